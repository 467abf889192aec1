package service

import (
	"testing"

	"sentimark/internal/model"
)

func TestPredictorSeedSentences(t *testing.T) {
	p := NewPredictor()

	tests := []struct {
		text string
		want model.Sentiment
	}{
		{"I love this product", model.SentimentPositive},
		{"Absolutely fantastic", model.SentimentPositive},
		{"This is terrible", model.SentimentNegative},
		{"Horrible service", model.SentimentNegative},
		{"It works as expected", model.SentimentNeutral},
	}

	for _, tt := range tests {
		got, confidence := p.Predict(tt.text)
		if got != tt.want {
			t.Fatalf("Predict(%q) = %q, want %q", tt.text, got, tt.want)
		}
		if confidence < 0 || confidence > 1 {
			t.Fatalf("Predict(%q) confidence = %v, outside [0,1]", tt.text, confidence)
		}
	}
}

func TestPredictorUnseenText(t *testing.T) {
	p := NewPredictor()

	s, confidence := p.Predict("zxqv blorf unseen tokens")
	if !s.Valid() {
		t.Fatalf("Predict returned invalid label %q", s)
	}
	if confidence < 0 || confidence > 1 {
		t.Fatalf("confidence = %v, outside [0,1]", confidence)
	}
}

func TestPredictorTokenize(t *testing.T) {
	got := tokenize("It's GREAT, really!")
	want := []string{"it", "s", "great", "really"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokenize[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
