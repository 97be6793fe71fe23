package reports

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
	reportsCollection  *mongo.Collection
	commentsCollection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	reportsCollection := db.Collection("reports")
	commentsCollection := db.Collection("comments")

	reportsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "targetContact.bankAccount", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "targetContact.phone", Value: 1}},
		},
	})

	commentsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "reportId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{
		reportsCollection:  reportsCollection,
		commentsCollection: commentsCollection,
	}
}

func (r *Repository) Create(ctx context.Context, report *Report) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()
	report.Status = StatusPending
	report.Views = 0
	report.CommentCount = 0
	if report.Evidence == nil {
		report.Evidence = []string{}
	}

	_, err := r.reportsCollection.InsertOne(ctx, report)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	err := r.reportsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// GetVerifiedAndCountView returns a verified report while atomically
// bumping its view counter; non-verified reports read as not found.
func (r *Repository) GetVerifiedAndCountView(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	err := r.reportsCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": StatusVerified},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// UpdateStatus sets only status and updatedAt. No other field is touched
// so documents predating the current schema still transition cleanly.
func (r *Repository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Report, error) {
	var report Report
	err := r.reportsCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.reportsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) IncrementCommentCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.reportsCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"commentCount": delta}},
	)
	if err != nil {
		return err
	}

	if delta < 0 {
		_, _ = r.reportsCollection.UpdateOne(ctx,
			bson.M{"_id": id, "commentCount": bson.M{"$lt": 0}},
			bson.M{"$set": bson.M{"commentCount": 0}},
		)
	}

	return nil
}

// List returns reports matching filter, newest first.
func (r *Repository) List(ctx context.Context, filter bson.M, skip, limit int64) ([]Report, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.reportsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []Report
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.reportsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByProfile returns reports linked to a profile; adminView includes
// every status, public view only verified ones.
func (r *Repository) ListByProfile(ctx context.Context, profileID primitive.ObjectID, adminView bool) ([]Report, error) {
	filter := bson.M{"profileId": profileID}
	if !adminView {
		filter["status"] = StatusVerified
	}

	cursor, err := r.reportsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []Report
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetStats assembles the homepage counters.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	verified, err := r.reportsCollection.CountDocuments(ctx, bson.M{"status": StatusVerified})
	if err != nil {
		return nil, err
	}
	pending, err := r.reportsCollection.CountDocuments(ctx, bson.M{"status": StatusPending})
	if err != nil {
		return nil, err
	}
	comments, err := r.commentsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	bankScams, err := r.reportsCollection.CountDocuments(ctx, bson.M{
		"status":  StatusVerified,
		"channel": ChannelBank,
		"targetContact.bankAccount": bson.M{"$exists": true, "$ne": ""},
	})
	if err != nil {
		return nil, err
	}
	fbScams, err := r.reportsCollection.CountDocuments(ctx, bson.M{
		"status":  StatusVerified,
		"channel": ChannelBank,
		"targetContact.facebook": bson.M{"$exists": true, "$ne": ""},
	})
	if err != nil {
		return nil, err
	}

	return &Stats{
		Verified:      verified,
		Pending:       pending,
		Comments:      comments,
		BankScamCount: bankScams,
		FBScamCount:   fbScams,
	}, nil
}

func (r *Repository) InsertComment(ctx context.Context, comment *Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.commentsCollection.InsertOne(ctx, comment)
	return err
}

func (r *Repository) DeleteComment(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	var comment Comment
	err := r.commentsCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *Repository) DeleteCommentsByReport(ctx context.Context, reportID primitive.ObjectID) error {
	_, err := r.commentsCollection.DeleteMany(ctx, bson.M{"reportId": reportID})
	return err
}

func (r *Repository) ListComments(ctx context.Context, reportID primitive.ObjectID, skip, limit int64) ([]Comment, int64, error) {
	filter := bson.M{"reportId": reportID}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.commentsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var comments []Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}

	total, err := r.commentsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// RecentComments returns the latest comments across all reports; the
// handler filters them down to verified parents.
func (r *Repository) RecentComments(ctx context.Context, limit int64) ([]Comment, error) {
	cursor, err := r.commentsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
