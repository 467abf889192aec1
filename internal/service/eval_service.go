package service

import (
	"context"
	"log"
	"sort"

	"sentimark/internal/cache"
	"sentimark/internal/model"
	"sentimark/internal/repository"
)

// EvalService scores the predictor against the held-out validation set.
type EvalService struct {
	validation repository.ValidationRepo
	predictor  *Predictor
	evalCache  cache.EvalCache // optional, nil disables caching
}

func NewEvalService(validation repository.ValidationRepo, predictor *Predictor, evalCache cache.EvalCache) *EvalService {
	return &EvalService{
		validation: validation,
		predictor:  predictor,
		evalCache:  evalCache,
	}
}

// Evaluate runs the predictor over every validation record and aggregates
// classification metrics. Fails with a precondition error when no validation
// set has been uploaded.
func (s *EvalService) Evaluate(ctx context.Context) (*model.EvaluationMetrics, error) {
	count, err := s.validation.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &model.PreconditionError{
			Detail: "no validation data available, upload a validation dataset first",
		}
	}

	var version int64
	if s.evalCache != nil {
		version, err = s.evalCache.ValidationVersion(ctx)
		if err != nil {
			log.Printf("[eval] cache version lookup failed: %v", err)
		} else if cached, err := s.evalCache.GetMetrics(ctx, version); err != nil {
			log.Printf("[eval] cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	items, err := s.validation.All(ctx)
	if err != nil {
		return nil, err
	}

	trueLabels := make([]model.Sentiment, len(items))
	predLabels := make([]model.Sentiment, len(items))
	for i, item := range items {
		trueLabels[i] = item.TrueSentiment
		predLabels[i], _ = s.predictor.Predict(item.Text)
	}

	metrics := ComputeMetrics(trueLabels, predLabels)

	if s.evalCache != nil {
		if err := s.evalCache.SetMetrics(ctx, version, metrics); err != nil {
			log.Printf("[eval] cache write failed: %v", err)
		}
	}

	return metrics, nil
}

// ComputeMetrics aggregates per-label precision, recall and F1, the macro F1
// and the confusion matrix. Labels are the sorted union of true and predicted
// values and fix the matrix row (true) and column (predicted) order. Any
// ratio with a zero denominator is 0, and zero-support labels still count
// toward the macro F1.
func ComputeMetrics(trueLabels, predLabels []model.Sentiment) *model.EvaluationMetrics {
	seen := make(map[model.Sentiment]struct{})
	for _, l := range trueLabels {
		seen[l] = struct{}{}
	}
	for _, l := range predLabels {
		seen[l] = struct{}{}
	}

	labels := make([]model.Sentiment, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	index := make(map[model.Sentiment]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	matrix := make([][]int, len(labels))
	for i := range matrix {
		matrix[i] = make([]int, len(labels))
	}
	for i := range trueLabels {
		matrix[index[trueLabels[i]]][index[predLabels[i]]]++
	}

	metrics := &model.EvaluationMetrics{
		Precision:       make(map[model.Sentiment]float64),
		Recall:          make(map[model.Sentiment]float64),
		F1Score:         make(map[model.Sentiment]float64),
		ConfusionMatrix: matrix,
		Labels:          labels,
	}

	var f1Sum float64
	for i, label := range labels {
		tp := matrix[i][i]
		var fp, fn int
		for j := range labels {
			if j == i {
				continue
			}
			fp += matrix[j][i]
			fn += matrix[i][j]
		}

		precision := safeRatio(tp, tp+fp)
		recall := safeRatio(tp, tp+fn)
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		metrics.Precision[label] = precision
		metrics.Recall[label] = recall
		metrics.F1Score[label] = f1
		f1Sum += f1
	}

	if len(labels) > 0 {
		metrics.MacroF1 = f1Sum / float64(len(labels))
	}

	return metrics
}

func safeRatio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
