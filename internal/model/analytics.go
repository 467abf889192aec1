package model

// Statistics is the corpus-wide aggregate view. Distribution counts use the
// effective sentiment; AvgConfidence stays on the raw model confidence.
type Statistics struct {
	TotalTexts            int               `json:"total_texts"`
	SentimentDistribution map[Sentiment]int `json:"sentiment_distribution"`
	AvgConfidence         float64           `json:"avg_confidence"`
	CorrectedCount        int               `json:"corrected_count"`
	BySource              map[string]int    `json:"by_source"`
}

// EvaluationMetrics is one evaluation run over the validation set. Labels
// fixes the index order of the confusion matrix rows (true) and columns
// (predicted).
type EvaluationMetrics struct {
	MacroF1         float64               `json:"macro_f1"`
	Precision       map[Sentiment]float64 `json:"precision"`
	Recall          map[Sentiment]float64 `json:"recall"`
	F1Score         map[Sentiment]float64 `json:"f1_score"`
	ConfusionMatrix [][]int               `json:"confusion_matrix"`
	Labels          []Sentiment           `json:"labels"`
}
