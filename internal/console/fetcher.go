package console

import (
	"sync"
	"sync/atomic"

	"sentimark/internal/model"
)

// Fetcher guards the rendered listing against out-of-order completions.
// Each dispatch captures a monotonically increasing generation; a completion
// is applied only while its generation is still the latest, so a slow
// response for superseded filters can never overwrite a newer result.
type Fetcher struct {
	gen atomic.Uint64

	mu      sync.Mutex
	page    model.PaginatedResponse
	hasPage bool
}

// Dispatch registers a new in-flight query and returns its completion
// callback. The callback reports whether the page was applied or discarded
// as stale.
func (f *Fetcher) Dispatch() func(model.PaginatedResponse) bool {
	g := f.gen.Add(1)
	return func(page model.PaginatedResponse) bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		if g != f.gen.Load() {
			return false
		}
		f.page = page
		f.hasPage = true
		return true
	}
}

// Page returns the last applied page, if any.
func (f *Fetcher) Page() (model.PaginatedResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page, f.hasPage
}
