package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"sentimark/internal/model"
)

const tolerance = 1e-3

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestComputeMetrics(t *testing.T) {
	pos := model.SentimentPositive
	neg := model.SentimentNegative

	trueLabels := []model.Sentiment{pos, pos, neg}
	predLabels := []model.Sentiment{pos, neg, neg}

	m := ComputeMetrics(trueLabels, predLabels)

	// Sorted label union: negative before positive.
	if len(m.Labels) != 2 || m.Labels[0] != neg || m.Labels[1] != pos {
		t.Fatalf("labels = %v, want [negative positive]", m.Labels)
	}

	// Rows are true labels, columns predicted, in Labels order.
	want := [][]int{{1, 0}, {1, 1}}
	for i := range want {
		for j := range want[i] {
			if m.ConfusionMatrix[i][j] != want[i][j] {
				t.Fatalf("confusion[%d][%d] = %d, want %d", i, j, m.ConfusionMatrix[i][j], want[i][j])
			}
		}
	}

	if !almostEqual(m.Precision[pos], 1.0) || !almostEqual(m.Recall[pos], 0.5) {
		t.Fatalf("positive p/r = %v/%v, want 1.0/0.5", m.Precision[pos], m.Recall[pos])
	}
	if !almostEqual(m.Precision[neg], 0.5) || !almostEqual(m.Recall[neg], 1.0) {
		t.Fatalf("negative p/r = %v/%v, want 0.5/1.0", m.Precision[neg], m.Recall[neg])
	}
	if !almostEqual(m.F1Score[pos], 0.667) || !almostEqual(m.F1Score[neg], 0.667) {
		t.Fatalf("f1 = %v/%v, want 0.667 each", m.F1Score[pos], m.F1Score[neg])
	}
	if !almostEqual(m.MacroF1, 0.667) {
		t.Fatalf("macro f1 = %v, want 0.667", m.MacroF1)
	}
}

func TestComputeMetricsZeroDenominators(t *testing.T) {
	pos := model.SentimentPositive
	neg := model.SentimentNegative

	// The model never predicts negative: precision(neg) has a zero
	// denominator and must come out 0, never NaN.
	trueLabels := []model.Sentiment{pos, neg}
	predLabels := []model.Sentiment{pos, pos}

	m := ComputeMetrics(trueLabels, predLabels)

	for _, v := range []float64{m.Precision[neg], m.Recall[neg], m.F1Score[neg]} {
		if math.IsNaN(v) || v != 0 {
			t.Fatalf("zero-support metric = %v, want 0", v)
		}
	}

	// Zero-support labels still count toward macro F1.
	wantMacro := (m.F1Score[pos] + 0) / 2
	if !almostEqual(m.MacroF1, wantMacro) {
		t.Fatalf("macro f1 = %v, want %v (zero-support label included)", m.MacroF1, wantMacro)
	}
}

func TestComputeMetricsPerfect(t *testing.T) {
	labels := []model.Sentiment{
		model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral,
	}
	m := ComputeMetrics(labels, labels)

	if !almostEqual(m.MacroF1, 1.0) {
		t.Fatalf("macro f1 = %v, want 1.0", m.MacroF1)
	}
	for _, l := range m.Labels {
		if !almostEqual(m.F1Score[l], 1.0) {
			t.Fatalf("f1[%s] = %v, want 1.0", l, m.F1Score[l])
		}
	}
}

func TestEvaluateRequiresValidationSet(t *testing.T) {
	svc := NewEvalService(&fakeValidationRepo{}, NewPredictor(), nil)

	_, err := svc.Evaluate(context.Background())
	var preconditionErr *model.PreconditionError
	if !errors.As(err, &preconditionErr) {
		t.Fatalf("want PreconditionError, got %v", err)
	}
}

func TestEvaluateAgainstSeedTexts(t *testing.T) {
	// Validation texts drawn from the predictor's own training data, so
	// predictions are deterministic and correct.
	validation := &fakeValidationRepo{items: []model.ValidationItem{
		{ID: "v1", Text: "I love this product", TrueSentiment: model.SentimentPositive},
		{ID: "v2", Text: "This is terrible", TrueSentiment: model.SentimentNegative},
		{ID: "v3", Text: "Worst experience ever", TrueSentiment: model.SentimentNegative},
	}}
	svc := NewEvalService(validation, NewPredictor(), nil)

	m, err := svc.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if !almostEqual(m.MacroF1, 1.0) {
		t.Fatalf("macro f1 = %v, want 1.0 on training sentences", m.MacroF1)
	}
	if len(m.ConfusionMatrix) != len(m.Labels) {
		t.Fatalf("matrix has %d rows for %d labels", len(m.ConfusionMatrix), len(m.Labels))
	}
}
