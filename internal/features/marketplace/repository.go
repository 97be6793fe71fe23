package marketplace

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
	listingsCollection *mongo.Collection
	commentsCollection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	listingsCollection := db.Collection("marketplace")
	commentsCollection := db.Collection("marketplace_comments")

	listingsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "expiresAt", Value: 1}},
		},
	})

	commentsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "marketplaceId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{
		listingsCollection: listingsCollection,
		commentsCollection: commentsCollection,
	}
}

func (r *Repository) Create(ctx context.Context, listing *Listing) error {
	listing.ID = primitive.NewObjectID()
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()
	listing.Status = StatusPending
	listing.Views = 0
	listing.CommentCount = 0
	if listing.Images == nil {
		listing.Images = []string{}
	}
	if listing.PriceUnit == "" {
		listing.PriceUnit = "VND"
	}

	_, err := r.listingsCollection.InsertOne(ctx, listing)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Listing, error) {
	var listing Listing
	err := r.listingsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// CountView bumps the view counter of an approved listing. Missing or
// unapproved listings are ignored.
func (r *Repository) CountView(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.listingsCollection.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusApproved},
		bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (r *Repository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*Listing, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var listing Listing
	err := r.listingsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *Repository) Approve(ctx context.Context, id, adminID primitive.ObjectID, approvedAt, expiresAt time.Time) (*Listing, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"status":     StatusApproved,
			"approvedAt": approvedAt,
			"approvedBy": adminID,
			"expiresAt":  expiresAt,
			"updatedAt":  time.Now(),
		},
		"$unset": bson.M{"rejectionReason": ""},
	})
}

func (r *Repository) Reject(ctx context.Context, id primitive.ObjectID, reason string) (*Listing, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"status":          StatusRejected,
			"rejectionReason": reason,
			"updatedAt":       time.Now(),
		},
	})
}

func (r *Repository) SetSold(ctx context.Context, id primitive.ObjectID) (*Listing, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"status":    StatusSold,
			"updatedAt": time.Now(),
		},
	})
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.listingsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) IncrementCommentCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.listingsCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"commentCount": delta}})
	if err != nil {
		return err
	}

	if delta < 0 {
		_, err = r.listingsCollection.UpdateOne(ctx,
			bson.M{"_id": id, "commentCount": bson.M{"$lt": 0}},
			bson.M{"$set": bson.M{"commentCount": 0}})
	}
	return err
}

func (r *Repository) List(ctx context.Context, filter bson.M, skip, limit int64, sort bson.D) ([]Listing, int64, error) {
	total, err := r.listingsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	cursor, err := r.listingsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	listings := []Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.Approved, err = r.listingsCollection.CountDocuments(ctx, bson.M{"status": StatusApproved}); err != nil {
		return nil, err
	}
	if stats.Pending, err = r.listingsCollection.CountDocuments(ctx, bson.M{"status": StatusPending}); err != nil {
		return nil, err
	}
	if stats.Sold, err = r.listingsCollection.CountDocuments(ctx, bson.M{"status": StatusSold}); err != nil {
		return nil, err
	}

	cursor, err := r.listingsCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": StatusApproved}}},
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

func (r *Repository) ListApprovedMissingExpiry(ctx context.Context) ([]Listing, error) {
	cursor, err := r.listingsCollection.Find(ctx, bson.M{
		"status":    StatusApproved,
		"expiresAt": bson.M{"$exists": false},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := []Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *Repository) SetExpiresAt(ctx context.Context, id primitive.ObjectID, expiresAt time.Time) error {
	_, err := r.listingsCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"expiresAt": expiresAt, "updatedAt": time.Now()}})
	return err
}

func (r *Repository) ListExpired(ctx context.Context, now time.Time) ([]Listing, error) {
	cursor, err := r.listingsCollection.Find(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := []Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *Repository) InsertComment(ctx context.Context, comment *ListingComment) error {
	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	_, err := r.commentsCollection.InsertOne(ctx, comment)
	return err
}

func (r *Repository) DeleteComment(ctx context.Context, id primitive.ObjectID) (*ListingComment, error) {
	var comment ListingComment
	err := r.commentsCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *Repository) DeleteCommentsByListing(ctx context.Context, listingID primitive.ObjectID) error {
	_, err := r.commentsCollection.DeleteMany(ctx, bson.M{"marketplaceId": listingID})
	return err
}

func (r *Repository) ListComments(ctx context.Context, listingID primitive.ObjectID, skip, limit int64) ([]ListingComment, int64, error) {
	filter := bson.M{"marketplaceId": listingID}

	total, err := r.commentsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.commentsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	comments := []ListingComment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
