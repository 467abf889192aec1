package model

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name           string
		itemCount      int
		total          int
		page           int
		pageSize       int
		wantTotalPages int
	}{
		{"first of two pages", 20, 25, 1, 20, 2},
		{"last partial page", 5, 25, 2, 20, 2},
		{"exact fit", 20, 40, 2, 20, 2},
		{"single page", 3, 3, 1, 20, 1},
		{"empty corpus", 0, 0, 1, 20, 0},
		{"page past the end", 0, 25, 5, 20, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]TextItem, tt.itemCount)
			p := NewPage(items, tt.total, tt.page, tt.pageSize)

			if p.TotalPages != tt.wantTotalPages {
				t.Fatalf("TotalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.Total != tt.total {
				t.Fatalf("Total = %d, want %d", p.Total, tt.total)
			}
			if len(p.Items) > p.PageSize {
				t.Fatalf("items.length %d exceeds page_size %d", len(p.Items), p.PageSize)
			}
			if p.Page == p.TotalPages && p.Page*p.PageSize < p.Total {
				t.Fatalf("last page does not cover total: %d*%d < %d", p.Page, p.PageSize, p.Total)
			}
		})
	}
}

func TestNewPageNilItems(t *testing.T) {
	p := NewPage(nil, 0, 1, 20)
	if p.Items == nil {
		t.Fatal("Items must serialize as [], not null")
	}
}
