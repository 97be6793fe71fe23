package news

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("news")

	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "publishedAt", Value: -1}},
		},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, article *Article) error {
	article.ID = primitive.NewObjectID()
	article.CreatedAt = time.Now()
	article.UpdatedAt = time.Now()
	article.Views = 0
	if article.Status == "" {
		article.Status = StatusPublished
	}
	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, article)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Article, error) {
	var article Article
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// CountView bumps the view counter of a published article.
func (r *Repository) CountView(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusPublished},
		bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Article, error) {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var article Article
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter bson.M, skip, limit int64, sort bson.D) ([]Article, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	articles := []Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.Published, err = r.collection.CountDocuments(ctx, bson.M{"status": StatusPublished}); err != nil {
		return nil, err
	}
	if stats.Draft, err = r.collection.CountDocuments(ctx, bson.M{"status": StatusDraft}); err != nil {
		return nil, err
	}

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "totalViews": bson.M{"$sum": "$views"}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grouped []struct {
		TotalViews int64 `bson:"totalViews"`
	}
	if err := cursor.All(ctx, &grouped); err != nil {
		return nil, err
	}
	if len(grouped) > 0 {
		stats.TotalViews = grouped[0].TotalViews
	}
	return stats, nil
}
