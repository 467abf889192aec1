package model

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginatedResponse is one page of a filtered listing. Total counts the whole
// filtered set, not just this page.
type PaginatedResponse struct {
	Items      []TextItem `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// NewPage builds the response envelope for one page slice.
func NewPage(items []TextItem, total, page, pageSize int) PaginatedResponse {
	if items == nil {
		items = []TextItem{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ListFilter is the browse-view filter set: single source, effective
// sentiment, confidence floor.
type ListFilter struct {
	Page          int
	PageSize      int
	Source        string
	Sentiment     string
	MinConfidence *float64
}

// SearchQuery is the discovery-view filter set: free text plus multi-source.
// It doubles as the POST /search wire shape.
type SearchQuery struct {
	Query         string   `json:"query,omitempty"`
	Sources       []string `json:"sources,omitempty"`
	Sentiment     string   `json:"sentiment,omitempty"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`
	Page          int      `json:"page,omitempty"`
	PageSize      int      `json:"page_size,omitempty"`
}
