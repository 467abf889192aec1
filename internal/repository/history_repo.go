package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sentimark/internal/model"
)

type HistoryRepo interface {
	Append(ctx context.Context, rec *model.EditRecord) error
	ByItem(ctx context.Context, textItemID string) ([]model.EditRecord, error)
}

type historyRepo struct {
	collection *mongo.Collection
}

func NewHistoryRepo(db *mongo.Database) HistoryRepo {
	return &historyRepo{collection: db.Collection("edit_history")}
}

func (r *historyRepo) Append(ctx context.Context, rec *model.EditRecord) error {
	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

func (r *historyRepo) ByItem(ctx context.Context, textItemID string) ([]model.EditRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "edited_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"text_item_id": textItemID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.EditRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
