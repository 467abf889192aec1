package model

import "fmt"

// ValidationError marks malformed filter or correction input. Services raise
// it before touching the store so a bad request never triggers a query.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

// NotFoundError marks a lookup for an id that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PreconditionError marks an operation whose prerequisite state is missing,
// e.g. evaluate before any validation set was uploaded.
type PreconditionError struct {
	Detail string
}

func (e *PreconditionError) Error() string { return e.Detail }
