package auth

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
	usersCollection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	usersCollection := db.Collection("users")

	usersCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{usersCollection: usersCollection}
}

// Create inserts a new admin account. The password must already be hashed.
func (r *Repository) Create(ctx context.Context, user *User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.usersCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := r.usersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByLogin finds a user by username or email.
func (r *Repository) GetByLogin(ctx context.Context, login string) (*User, error) {
	var user User
	err := r.usersCollection.FindOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"username": login},
			bson.M{"email": login},
		},
	}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	cursor, err := r.usersCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now()

	result, err := r.usersCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.Update(ctx, id, bson.M{"password": passwordHash})
}

func (r *Repository) SetLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.usersCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLogin": time.Now()}},
	)
	return err
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.usersCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
