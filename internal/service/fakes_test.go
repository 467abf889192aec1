package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"sentimark/internal/model"
	"sentimark/internal/repository"
)

// fakeTextRepo is an in-memory TextRepo mirroring the store's filter and
// ordering semantics.
type fakeTextRepo struct {
	items     []model.TextItem
	findCalls int
}

func (r *fakeTextRepo) InsertMany(_ context.Context, items []model.TextItem) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeTextRepo) GetByID(_ context.Context, id string) (*model.TextItem, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *fakeTextRepo) Find(_ context.Context, q repository.TextQuery) ([]model.TextItem, int, error) {
	r.findCalls++

	var matched []model.TextItem
	for _, item := range r.sorted() {
		if q.TextContains != "" && !strings.Contains(strings.ToLower(item.Text), strings.ToLower(q.TextContains)) {
			continue
		}
		if q.Source != "" && item.Source != q.Source {
			continue
		}
		if len(q.Sources) > 0 && !contains(q.Sources, item.Source) {
			continue
		}
		if q.Sentiment != nil && item.Effective() != *q.Sentiment {
			continue
		}
		if q.MinConfidence != nil && item.Confidence < *q.MinConfidence {
			continue
		}
		matched = append(matched, item)
	}

	total := len(matched)
	if q.Skip >= total {
		return nil, total, nil
	}
	end := q.Skip + q.Limit
	if end > total {
		end = total
	}
	return matched[q.Skip:end], total, nil
}

func (r *fakeTextRepo) SetCorrection(_ context.Context, id string, s model.Sentiment, at time.Time) (*model.TextItem, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Correct(s)
			r.items[i].UpdatedAt = at
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *fakeTextRepo) All(_ context.Context) ([]model.TextItem, error) {
	return r.sorted(), nil
}

func (r *fakeTextRepo) sorted() []model.TextItem {
	out := make([]model.TextItem, len(r.items))
	copy(out, r.items)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

type fakeHistoryRepo struct {
	records []model.EditRecord
}

func (r *fakeHistoryRepo) Append(_ context.Context, rec *model.EditRecord) error {
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakeHistoryRepo) ByItem(_ context.Context, textItemID string) ([]model.EditRecord, error) {
	var out []model.EditRecord
	for _, rec := range r.records {
		if rec.TextItemID == textItemID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeValidationRepo struct {
	items []model.ValidationItem
}

func (r *fakeValidationRepo) InsertMany(_ context.Context, items []model.ValidationItem) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeValidationRepo) All(_ context.Context) ([]model.ValidationItem, error) {
	return r.items, nil
}

func (r *fakeValidationRepo) Count(_ context.Context) (int, error) {
	return len(r.items), nil
}

type fakeDatasetRepo struct {
	datasets []model.Dataset
}

func (r *fakeDatasetRepo) Create(_ context.Context, ds *model.Dataset) error {
	r.datasets = append(r.datasets, *ds)
	return nil
}

func (r *fakeDatasetRepo) List(_ context.Context) ([]model.Dataset, error) {
	return r.datasets, nil
}

// newTextItem is a test record constructor.
func newTextItem(id, source, text string, predicted model.Sentiment, confidence float64, createdAt time.Time) model.TextItem {
	return model.TextItem{
		ID:         id,
		Source:     source,
		Text:       text,
		Label:      model.Label{Predicted: predicted},
		Confidence: confidence,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}
