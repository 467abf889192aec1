package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"sentimark/internal/repository"
)

// ExportService serializes the corpus to a delimited-text download. The
// effective sentiment column is what downstream consumers should use; the
// raw prediction and correction columns are kept for auditability.
type ExportService struct {
	texts repository.TextRepo
}

func NewExportService(texts repository.TextRepo) *ExportService {
	return &ExportService{texts: texts}
}

var exportHeader = []string{
	"id", "source", "text",
	"predicted_sentiment", "corrected_sentiment", "effective_sentiment",
	"confidence", "created_at", "updated_at",
}

// WriteCSV writes every record to w. Callers who need an all-or-nothing
// payload should hand in a buffer and flush it only on success.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	items, err := s.texts.All(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, item := range items {
		corrected := ""
		if item.Corrected != nil {
			corrected = string(*item.Corrected)
		}
		row := []string{
			item.ID,
			item.Source,
			item.Text,
			string(item.Predicted),
			corrected,
			string(item.Effective()),
			strconv.FormatFloat(item.Confidence, 'f', -1, 64),
			item.CreatedAt.UTC().Format(time.RFC3339),
			item.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
