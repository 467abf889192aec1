// Package console implements the operator console's data layer: the typed
// API client, the transient view state, and the request sequencing rules
// (stale-response discard, serialized edits, non-blocking evaluation).
// Rendering sits on top of this package and is out of scope here.
package console

import (
	"context"

	"sentimark/internal/model"
)

// Console orchestrates the client against the view state.
type Console struct {
	Client *Client
	State  *ViewState

	fetcher Fetcher
}

func New(client *Client) *Console {
	return &Console{
		Client: client,
		State:  NewViewState(),
	}
}

// Refresh fetches the page for the current view state. The result is applied
// only if no newer refresh was dispatched while this one was in flight;
// Refresh reports whether its result ended up rendered.
func (c *Console) Refresh(ctx context.Context) (bool, error) {
	complete := c.fetcher.Dispatch()

	page, err := c.Client.ListTexts(ctx, c.State.ListFilter())
	if err != nil {
		return false, err
	}
	return complete(*page), nil
}

// CurrentPage returns the last rendered page, if any.
func (c *Console) CurrentPage() (model.PaginatedResponse, bool) {
	return c.fetcher.Page()
}

// SetFilters replaces the filters, resets to page one and refreshes.
func (c *Console) SetFilters(ctx context.Context, f Filters) (bool, error) {
	c.State.SetFilters(f)
	return c.Refresh(ctx)
}

// GoToPage moves the view to a page and refreshes.
func (c *Console) GoToPage(ctx context.Context, page int) (bool, error) {
	c.State.Page = page
	return c.Refresh(ctx)
}

// SubmitCorrection sends the open edit session's draft to the backend,
// waits for it to land, then closes the session and re-fetches the current
// page so the view reflects the authoritative record, not the local draft.
func (c *Console) SubmitCorrection(ctx context.Context) (*model.TextItem, error) {
	if c.State.Edit == nil {
		return nil, ErrNoEditSession
	}

	item, err := c.Client.CorrectText(ctx, c.State.Edit.ItemID, c.State.Edit.Draft)
	if err != nil {
		// The session stays open so the operator can retry or cancel.
		return nil, err
	}

	c.State.CancelEdit()
	if _, err := c.Refresh(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// EvalResult is the single delivery of one evaluation run.
type EvalResult struct {
	Metrics *model.EvaluationMetrics
	Err     error
}

// EvaluateAsync triggers an evaluation without blocking other console
// operations. The result is delivered exactly once on the returned channel.
func (c *Console) EvaluateAsync(ctx context.Context) <-chan EvalResult {
	ch := make(chan EvalResult, 1)
	go func() {
		metrics, err := c.Client.Evaluate(ctx)
		ch <- EvalResult{Metrics: metrics, Err: err}
		close(ch)
	}()
	return ch
}
