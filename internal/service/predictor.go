package service

import (
	"math"
	"strings"
	"unicode"

	"sentimark/internal/model"
)

// Predictor is a multinomial naive Bayes sentiment classifier over a
// bag-of-words representation. It is deliberately small: the console is an
// operator tool for reviewing and correcting labels, not a model workbench,
// so a seed-trained classifier is enough to drive ingestion and evaluation.
type Predictor struct {
	classes    []model.Sentiment
	docCounts  map[model.Sentiment]int
	wordCounts map[model.Sentiment]map[string]int
	wordTotals map[model.Sentiment]int
	vocab      map[string]struct{}
	totalDocs  int
}

func NewPredictor() *Predictor {
	p := &Predictor{
		classes:    model.Sentiments,
		docCounts:  make(map[model.Sentiment]int),
		wordCounts: make(map[model.Sentiment]map[string]int),
		wordTotals: make(map[model.Sentiment]int),
		vocab:      make(map[string]struct{}),
	}
	for _, c := range p.classes {
		p.wordCounts[c] = make(map[string]int)
	}
	p.Train(seedTexts, seedLabels)
	return p
}

// Train folds labeled examples into the class counts. Safe to call again to
// refine the model with corrected records.
func (p *Predictor) Train(texts []string, labels []model.Sentiment) {
	for i, text := range texts {
		label := labels[i]
		p.docCounts[label]++
		p.totalDocs++
		for _, tok := range tokenize(text) {
			p.wordCounts[label][tok]++
			p.wordTotals[label]++
			p.vocab[tok] = struct{}{}
		}
	}
}

// Predict returns the most likely sentiment for text and the model's
// confidence in it, the normalized posterior of the winning class.
func (p *Predictor) Predict(text string) (model.Sentiment, float64) {
	if p.totalDocs == 0 {
		return model.SentimentNeutral, 0.5
	}

	tokens := tokenize(text)
	vocabSize := float64(len(p.vocab))

	logScores := make([]float64, len(p.classes))
	for i, c := range p.classes {
		score := math.Log(float64(p.docCounts[c]+1) / float64(p.totalDocs+len(p.classes)))
		denom := float64(p.wordTotals[c]) + vocabSize
		for _, tok := range tokens {
			// Laplace smoothing keeps unseen words from zeroing the class.
			score += math.Log(float64(p.wordCounts[c][tok]+1) / denom)
		}
		logScores[i] = score
	}

	best := 0
	for i := range logScores {
		if logScores[i] > logScores[best] {
			best = i
		}
	}

	// Softmax over log scores, shifted by the max for stability.
	var total float64
	for _, s := range logScores {
		total += math.Exp(s - logScores[best])
	}

	return p.classes[best], 1.0 / total
}

func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}

// Seed corpus used to bootstrap the classifier when no trained model exists.
var seedTexts = []string{
	"This is amazing and wonderful", "I love this product", "Great experience",
	"Excellent service", "Best thing ever", "Absolutely fantastic",
	"This is terrible", "I hate this", "Worst experience ever",
	"Horrible service", "Complete waste of money", "Awful quality",
	"It's okay", "Not bad", "Average product", "Neutral opinion",
	"It works as expected", "Nothing special",
}

var seedLabels = []model.Sentiment{
	model.SentimentPositive, model.SentimentPositive, model.SentimentPositive,
	model.SentimentPositive, model.SentimentPositive, model.SentimentPositive,
	model.SentimentNegative, model.SentimentNegative, model.SentimentNegative,
	model.SentimentNegative, model.SentimentNegative, model.SentimentNegative,
	model.SentimentNeutral, model.SentimentNeutral, model.SentimentNeutral,
	model.SentimentNeutral, model.SentimentNeutral, model.SentimentNeutral,
}
