package model

import "fmt"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Sentiments lists every valid label, in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

// ParseSentiment validates a raw label value from a request or CSV cell.
func ParseSentiment(raw string) (Sentiment, error) {
	s := Sentiment(raw)
	if !s.Valid() {
		return "", &ValidationError{Detail: fmt.Sprintf("unknown sentiment %q", raw)}
	}
	return s, nil
}

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Label is the two-layer sentiment value: the model's prediction plus an
// optional human override. Every consumer that needs "the" sentiment of a
// record must go through Effective so the precedence rule lives in one place.
type Label struct {
	Predicted Sentiment  `json:"predicted_sentiment" bson:"predicted_sentiment"`
	Corrected *Sentiment `json:"corrected_sentiment,omitempty" bson:"corrected_sentiment,omitempty"`
}

// Effective returns the override when present, the prediction otherwise.
func (l Label) Effective() Sentiment {
	if l.Corrected != nil {
		return *l.Corrected
	}
	return l.Predicted
}

// IsCorrected reports whether a human override has been applied.
func (l Label) IsCorrected() bool {
	return l.Corrected != nil
}

// Correct applies a human override, leaving the prediction untouched.
func (l *Label) Correct(s Sentiment) {
	l.Corrected = &s
}
