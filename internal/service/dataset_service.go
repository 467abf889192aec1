package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"sentimark/internal/cache"
	"sentimark/internal/model"
	"sentimark/internal/repository"
)

// DatasetService ingests uploaded CSV files: the main corpus gets a predicted
// label per row, the validation set is stored verbatim for evaluation.
type DatasetService struct {
	texts      repository.TextRepo
	datasets   repository.DatasetRepo
	validation repository.ValidationRepo
	predictor  *Predictor
	evalCache  cache.EvalCache // optional, nil disables cache invalidation
}

func NewDatasetService(
	texts repository.TextRepo,
	datasets repository.DatasetRepo,
	validation repository.ValidationRepo,
	predictor *Predictor,
	evalCache cache.EvalCache,
) *DatasetService {
	return &DatasetService{
		texts:      texts,
		datasets:   datasets,
		validation: validation,
		predictor:  predictor,
		evalCache:  evalCache,
	}
}

// IngestDataset parses a raw corpus CSV (columns source,text), runs the
// predictor over every row, and stores the labeled records plus a dataset
// registry entry. Returns the number of records processed.
func (s *DatasetService) IngestDataset(ctx context.Context, filename string, r io.Reader) (int, error) {
	rows, idx, err := readCSV(r, "source", "text")
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	datasetID := uuid.NewString()

	items := make([]model.TextItem, 0, len(rows))
	for _, row := range rows {
		text := row[idx["text"]]
		sentiment, confidence := s.predictor.Predict(text)

		items = append(items, model.TextItem{
			ID:         uuid.NewString(),
			DatasetID:  datasetID,
			Source:     row[idx["source"]],
			Text:       text,
			Label:      model.Label{Predicted: sentiment},
			Confidence: confidence,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	ds := &model.Dataset{
		ID:           datasetID,
		Filename:     filename,
		TotalRecords: len(items),
		UploadedAt:   now,
	}
	if err := s.datasets.Create(ctx, ds); err != nil {
		return 0, err
	}
	if err := s.texts.InsertMany(ctx, items); err != nil {
		return 0, err
	}

	return len(items), nil
}

// IngestValidation parses a ground-truth CSV (columns text,sentiment) and
// stores it for evaluation. A single bad label rejects the whole file, so a
// partial validation set never lands.
func (s *DatasetService) IngestValidation(ctx context.Context, filename string, r io.Reader) (int, error) {
	rows, idx, err := readCSV(r, "text", "sentiment")
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	items := make([]model.ValidationItem, 0, len(rows))
	for i, row := range rows {
		sentiment, err := model.ParseSentiment(row[idx["sentiment"]])
		if err != nil {
			return 0, &model.ValidationError{
				Detail: fmt.Sprintf("row %d: %v", i+2, err),
			}
		}
		items = append(items, model.ValidationItem{
			ID:            uuid.NewString(),
			Text:          row[idx["text"]],
			TrueSentiment: sentiment,
			UploadedAt:    now,
		})
	}

	if err := s.validation.InsertMany(ctx, items); err != nil {
		return 0, err
	}

	if s.evalCache != nil {
		if err := s.evalCache.BumpValidationVersion(ctx); err != nil {
			log.Printf("[dataset] validation version bump failed: %v", err)
		}
	}

	return len(items), nil
}

// ListDatasets returns the upload registry, newest first.
func (s *DatasetService) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	datasets, err := s.datasets.List(ctx)
	if err != nil {
		return nil, err
	}
	if datasets == nil {
		datasets = []model.Dataset{}
	}
	return datasets, nil
}

// readCSV reads all rows and resolves the required column indices from the
// header. Column order in the file does not matter.
func readCSV(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &model.ValidationError{Detail: "csv file is empty"}
	}
	if err != nil {
		return nil, nil, &model.ValidationError{Detail: fmt.Sprintf("malformed csv: %v", err)}
	}

	idx := make(map[string]int, len(required))
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, &model.ValidationError{
				Detail: fmt.Sprintf("csv must contain columns: %v", required),
			}
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &model.ValidationError{Detail: fmt.Sprintf("malformed csv: %v", err)}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, &model.ValidationError{Detail: "csv file has no data rows"}
	}

	return rows, idx, nil
}
