package model

import "time"

// TextItem is one labeled unit of text. Source, Text and the predicted label
// are immutable after ingestion; only the correction and UpdatedAt move.
type TextItem struct {
	ID         string  `json:"id" bson:"_id"`
	DatasetID  string  `json:"dataset_id,omitempty" bson:"dataset_id,omitempty"`
	Source     string  `json:"source" bson:"source"`
	Text       string  `json:"text" bson:"text"`
	Label      `bson:",inline"`
	Confidence float64   `json:"confidence" bson:"confidence"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Dataset records one uploaded file.
type Dataset struct {
	ID           string    `json:"id" bson:"_id"`
	Filename     string    `json:"filename" bson:"filename"`
	TotalRecords int       `json:"total_records" bson:"total_records"`
	UploadedAt   time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// ValidationItem is one ground-truth record of the held-out validation set.
type ValidationItem struct {
	ID            string    `json:"id" bson:"_id"`
	Text          string    `json:"text" bson:"text"`
	TrueSentiment Sentiment `json:"true_sentiment" bson:"true_sentiment"`
	UploadedAt    time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// EditRecord is one entry of the correction audit trail.
type EditRecord struct {
	ID           string    `json:"id" bson:"_id"`
	TextItemID   string    `json:"text_item_id" bson:"text_item_id"`
	OldSentiment Sentiment `json:"old_sentiment" bson:"old_sentiment"`
	NewSentiment Sentiment `json:"new_sentiment" bson:"new_sentiment"`
	Editor       string    `json:"editor,omitempty" bson:"editor,omitempty"`
	EditedAt     time.Time `json:"edited_at" bson:"edited_at"`
}
