package service

import (
	"context"

	"sentimark/internal/model"
	"sentimark/internal/repository"
)

// StatsService computes the corpus-wide aggregate view. Recomputed fresh per
// call so the numbers always match the store at call time.
type StatsService struct {
	texts repository.TextRepo
}

func NewStatsService(texts repository.TextRepo) *StatsService {
	return &StatsService{texts: texts}
}

func (s *StatsService) Compute(ctx context.Context) (*model.Statistics, error) {
	items, err := s.texts.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.Statistics{
		SentimentDistribution: make(map[model.Sentiment]int),
		BySource:              make(map[string]int),
	}

	var totalConfidence float64
	for _, item := range items {
		stats.TotalTexts++
		stats.SentimentDistribution[item.Effective()]++
		totalConfidence += item.Confidence
		if item.IsCorrected() {
			stats.CorrectedCount++
		}

		source := item.Source
		if source == "" {
			source = "unknown"
		}
		stats.BySource[source]++
	}

	if stats.TotalTexts > 0 {
		stats.AvgConfidence = totalConfidence / float64(stats.TotalTexts)
	}

	return stats, nil
}
