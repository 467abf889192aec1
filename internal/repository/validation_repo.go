package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sentimark/internal/model"
)

type ValidationRepo interface {
	InsertMany(ctx context.Context, items []model.ValidationItem) error
	All(ctx context.Context) ([]model.ValidationItem, error)
	Count(ctx context.Context) (int, error)
}

type validationRepo struct {
	collection *mongo.Collection
}

func NewValidationRepo(db *mongo.Database) ValidationRepo {
	return &validationRepo{collection: db.Collection("validation_items")}
}

func (r *validationRepo) InsertMany(ctx context.Context, items []model.ValidationItem) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *validationRepo) All(ctx context.Context) ([]model.ValidationItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []model.ValidationItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *validationRepo) Count(ctx context.Context) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	return int(n), err
}
