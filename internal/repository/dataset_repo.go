package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sentimark/internal/model"
)

type DatasetRepo interface {
	Create(ctx context.Context, ds *model.Dataset) error
	List(ctx context.Context) ([]model.Dataset, error)
}

type datasetRepo struct {
	collection *mongo.Collection
}

func NewDatasetRepo(db *mongo.Database) DatasetRepo {
	return &datasetRepo{collection: db.Collection("datasets")}
}

func (r *datasetRepo) Create(ctx context.Context, ds *model.Dataset) error {
	_, err := r.collection.InsertOne(ctx, ds)
	return err
}

func (r *datasetRepo) List(ctx context.Context) ([]model.Dataset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var datasets []model.Dataset
	if err = cursor.All(ctx, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}
