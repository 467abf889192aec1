package console

import (
	"errors"

	"sentimark/internal/model"
)

var (
	ErrEditInProgress = errors.New("another edit session is already open")
	ErrNoEditSession  = errors.New("no edit session is open")
)

// Filters is the browse-view filter state.
type Filters struct {
	Source        string   `json:"source,omitempty"`
	Sentiment     string   `json:"sentiment,omitempty"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`
}

// EditSession is the single in-progress label edit. Only one may be open at
// a time; it is discarded on cancel and cleared once the correction lands.
type EditSession struct {
	ItemID string          `json:"item_id"`
	Draft  model.Sentiment `json:"draft"`
}

// ViewState is the console's transient state: current filters, current page,
// and the in-progress edit. It is an explicit struct rather than ambient
// globals so it can be exercised without any rendering attached.
type ViewState struct {
	Filters  Filters      `json:"filters"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Edit     *EditSession `json:"edit,omitempty"`
}

func NewViewState() *ViewState {
	return &ViewState{
		Page:     1,
		PageSize: model.DefaultPageSize,
	}
}

// SetFilters replaces the filter set and resets to the first page.
func (v *ViewState) SetFilters(f Filters) {
	v.Filters = f
	v.Page = 1
}

// ListFilter renders the view state as a Query Service filter.
func (v *ViewState) ListFilter() model.ListFilter {
	return model.ListFilter{
		Page:          v.Page,
		PageSize:      v.PageSize,
		Source:        v.Filters.Source,
		Sentiment:     v.Filters.Sentiment,
		MinConfidence: v.Filters.MinConfidence,
	}
}

// StartEdit opens an edit session for one record. Editing is serialized:
// starting a second session while one is open is an error.
func (v *ViewState) StartEdit(itemID string, draft model.Sentiment) error {
	if v.Edit != nil {
		return ErrEditInProgress
	}
	v.Edit = &EditSession{ItemID: itemID, Draft: draft}
	return nil
}

// CancelEdit discards the in-progress edit buffer.
func (v *ViewState) CancelEdit() {
	v.Edit = nil
}
