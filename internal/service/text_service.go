package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sentimark/internal/model"
	"sentimark/internal/repository"
)

// TextService owns the browse listing, search, and correction flows over the
// text corpus.
type TextService struct {
	texts   repository.TextRepo
	history repository.HistoryRepo
}

func NewTextService(texts repository.TextRepo, history repository.HistoryRepo) *TextService {
	return &TextService{texts: texts, history: history}
}

// List returns one page of the corpus under the browse filters. All input
// validation happens before the store is touched.
func (s *TextService) List(ctx context.Context, f model.ListFilter) (model.PaginatedResponse, error) {
	page, pageSize, err := normalizePaging(f.Page, f.PageSize)
	if err != nil {
		return model.PaginatedResponse{}, err
	}

	q := repository.TextQuery{
		Source: f.Source,
		Skip:   (page - 1) * pageSize,
		Limit:  pageSize,
	}
	if q.Sentiment, err = optionalSentiment(f.Sentiment); err != nil {
		return model.PaginatedResponse{}, err
	}
	if q.MinConfidence, err = optionalConfidence(f.MinConfidence); err != nil {
		return model.PaginatedResponse{}, err
	}

	items, total, err := s.texts.Find(ctx, q)
	if err != nil {
		return model.PaginatedResponse{}, err
	}
	return model.NewPage(items, total, page, pageSize), nil
}

// Search returns one page of the corpus under the discovery filters:
// case-insensitive containment on text, OR across sources, AND across fields.
func (s *TextService) Search(ctx context.Context, sq model.SearchQuery) (model.PaginatedResponse, error) {
	page, pageSize, err := normalizePaging(sq.Page, sq.PageSize)
	if err != nil {
		return model.PaginatedResponse{}, err
	}

	q := repository.TextQuery{
		TextContains: strings.TrimSpace(sq.Query),
		Sources:      sq.Sources,
		Skip:         (page - 1) * pageSize,
		Limit:        pageSize,
	}
	if q.Sentiment, err = optionalSentiment(sq.Sentiment); err != nil {
		return model.PaginatedResponse{}, err
	}
	if q.MinConfidence, err = optionalConfidence(sq.MinConfidence); err != nil {
		return model.PaginatedResponse{}, err
	}

	items, total, err := s.texts.Find(ctx, q)
	if err != nil {
		return model.PaginatedResponse{}, err
	}
	return model.NewPage(items, total, page, pageSize), nil
}

// Correct applies a human override to one record's sentiment and appends an
// audit-trail entry. The prediction and confidence are never touched.
func (s *TextService) Correct(ctx context.Context, id, rawSentiment, editor string) (*model.TextItem, error) {
	newSentiment, err := model.ParseSentiment(rawSentiment)
	if err != nil {
		return nil, err
	}

	before, err := s.texts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, &model.NotFoundError{Resource: "text item", ID: id}
	}

	updated, err := s.texts.SetCorrection(ctx, id, newSentiment, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &model.NotFoundError{Resource: "text item", ID: id}
	}

	rec := &model.EditRecord{
		ID:           uuid.NewString(),
		TextItemID:   id,
		OldSentiment: before.Effective(),
		NewSentiment: newSentiment,
		Editor:       editor,
		EditedAt:     updated.UpdatedAt,
	}
	if err := s.history.Append(ctx, rec); err != nil {
		return nil, err
	}

	return updated, nil
}

// History returns the correction audit trail for one record, oldest first.
func (s *TextService) History(ctx context.Context, id string) ([]model.EditRecord, error) {
	item, err := s.texts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.NotFoundError{Resource: "text item", ID: id}
	}

	records, err := s.history.ByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.EditRecord{}
	}
	return records, nil
}

func normalizePaging(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = model.DefaultPageSize
	}
	if page < 1 {
		return 0, 0, &model.ValidationError{Detail: "page must be >= 1"}
	}
	if pageSize < 1 || pageSize > model.MaxPageSize {
		return 0, 0, &model.ValidationError{
			Detail: fmt.Sprintf("page_size must be between 1 and %d", model.MaxPageSize),
		}
	}
	return page, pageSize, nil
}

func optionalSentiment(raw string) (*model.Sentiment, error) {
	if raw == "" {
		return nil, nil
	}
	s, err := model.ParseSentiment(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func optionalConfidence(v *float64) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	if *v < 0 || *v > 1 {
		return nil, &model.ValidationError{Detail: "min_confidence must be within [0, 1]"}
	}
	return v, nil
}
