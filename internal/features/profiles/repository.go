package profiles

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
	profilesCollection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	profilesCollection := db.Collection("profiles")

	profilesCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "contactInfo.phone", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "contactInfo.facebook.id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "riskLevel", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{profilesCollection: profilesCollection}
}

func (r *Repository) Create(ctx context.Context, profile *Profile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	if profile.RiskLevel == "" {
		profile.RiskLevel = RiskUnknown
	}

	_, err := r.profilesCollection.InsertOne(ctx, profile)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	var profile Profile
	err := r.profilesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) List(ctx context.Context, riskLevel string, skip, limit int64) ([]Profile, int64, error) {
	filter := bson.M{}
	if riskLevel != "" {
		filter["riskLevel"] = riskLevel
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.profilesCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []Profile
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.profilesCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Profile, error) {
	updates["updatedAt"] = time.Now()

	var profile Profile
	err := r.profilesCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.profilesCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementNegativeReports adjusts the cached verified-report counter by
// delta. The mutation must stay an atomic $inc, never a fetch-modify-save
// of the whole document, so concurrent verifications against the same
// profile cannot lose updates.
func (r *Repository) IncrementNegativeReports(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.profilesCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"reportCount.negative": delta},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}

	// Clamp in case a decrement raced a delete below zero.
	if delta < 0 {
		_, _ = r.profilesCollection.UpdateOne(ctx,
			bson.M{"_id": id, "reportCount.negative": bson.M{"$lt": 0}},
			bson.M{"$set": bson.M{"reportCount.negative": 0}},
		)
	}

	return nil
}
