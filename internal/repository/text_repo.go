package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sentimark/internal/model"
)

// TextQuery is the store-level filter both the browse listing and search
// compose. All set fields combine with AND; Sources is OR within the field.
type TextQuery struct {
	TextContains  string
	Source        string
	Sources       []string
	Sentiment     *model.Sentiment
	MinConfidence *float64
	Skip          int
	Limit         int
}

type TextRepo interface {
	InsertMany(ctx context.Context, items []model.TextItem) error
	GetByID(ctx context.Context, id string) (*model.TextItem, error)
	Find(ctx context.Context, q TextQuery) ([]model.TextItem, int, error)
	SetCorrection(ctx context.Context, id string, s model.Sentiment, at time.Time) (*model.TextItem, error)
	All(ctx context.Context) ([]model.TextItem, error)
}

type textRepo struct {
	collection *mongo.Collection
}

func NewTextRepo(db *mongo.Database) TextRepo {
	return &textRepo{collection: db.Collection("texts")}
}

func (r *textRepo) InsertMany(ctx context.Context, items []model.TextItem) error {
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

func (r *textRepo) GetByID(ctx context.Context, id string) (*model.TextItem, error) {
	var item model.TextItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *textRepo) Find(ctx context.Context, q TextQuery) ([]model.TextItem, int, error) {
	filter := buildFilter(q)

	n, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(textOrder()).
		SetSkip(int64(q.Skip)).
		SetLimit(int64(q.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []model.TextItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	return items, int(n), nil
}

func (r *textRepo) SetCorrection(ctx context.Context, id string, s model.Sentiment, at time.Time) (*model.TextItem, error) {
	update := bson.M{"$set": bson.M{
		"corrected_sentiment": s,
		"updated_at":          at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item model.TextItem
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *textRepo) All(ctx context.Context) ([]model.TextItem, error) {
	opts := options.Find().SetSort(textOrder())
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []model.TextItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// textOrder is the fixed listing order. The id tie-break keeps pages stable
// when many records share a created_at.
func textOrder() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
}

func buildFilter(q TextQuery) bson.M {
	filter := bson.M{}
	if q.TextContains != "" {
		filter["text"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.TextContains), Options: "i"}
	}
	if q.Source != "" {
		filter["source"] = q.Source
	}
	if len(q.Sources) > 0 {
		filter["source"] = bson.M{"$in": q.Sources}
	}
	if q.Sentiment != nil {
		// Match on the effective sentiment: correction wins over prediction.
		filter["$expr"] = bson.M{"$eq": bson.A{
			bson.M{"$ifNull": bson.A{"$corrected_sentiment", "$predicted_sentiment"}},
			*q.Sentiment,
		}}
	}
	if q.MinConfidence != nil {
		filter["confidence"] = bson.M{"$gte": *q.MinConfidence}
	}
	return filter
}
