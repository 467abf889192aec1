package console

import "fmt"

// TransportError marks a request that never produced a usable response:
// network failure, or a non-2xx status whose body carried no detail message.
type TransportError struct {
	Fallback string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Fallback, e.Err)
	}
	return e.Fallback
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError marks a non-2xx response whose JSON body carried a detail
// message; Detail is what the console surfaces next to the failed action.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string { return e.Detail }
