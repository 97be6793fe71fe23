package marketplace

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/pkg/nickname"
	"github.com/scamwatch/api-go/internal/pkg/normalize"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

const (
	maxNicknameLen = 50
	maxCommentLen  = 1000
)

// ListingStore is the persistence surface the service needs for
// listings. Moderation writes touch only the moderation fields so older
// listings with since-tightened fields can still be moderated.
type ListingStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*Listing, error)
	Approve(ctx context.Context, id, adminID primitive.ObjectID, approvedAt, expiresAt time.Time) (*Listing, error)
	Reject(ctx context.Context, id primitive.ObjectID, reason string) (*Listing, error)
	SetSold(ctx context.Context, id primitive.ObjectID) (*Listing, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncrementCommentCount applies an atomic delta, clamped at zero.
	IncrementCommentCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

// ListingCommentStore persists listing comments.
type ListingCommentStore interface {
	Insert(ctx context.Context, comment *ListingComment) error
	Delete(ctx context.Context, id primitive.ObjectID) (*ListingComment, error)
	DeleteByListing(ctx context.Context, listingID primitive.ObjectID) error
}

// Service owns the listing lifecycle: moderation, the sold transition's
// ownership rule, and comment cascades.
type Service struct {
	listings ListingStore
	comments ListingCommentStore
	now      func() time.Time
}

func NewService(listings ListingStore, comments ListingCommentStore) *Service {
	return &Service{listings: listings, comments: comments, now: time.Now}
}

// Approve publishes a listing: stamps approvedAt, derives expiresAt from
// the approval time, and clears any earlier rejection reason.
func (s *Service) Approve(ctx context.Context, id, adminID primitive.ObjectID) (*Listing, error) {
	now := s.now()
	return s.listings.Approve(ctx, id, adminID, now, now.Add(ExpiryWindow))
}

// Reject stores the reason, falling back to a generic one when the admin
// gives none.
func (s *Service) Reject(ctx context.Context, id primitive.ObjectID, reason string) (*Listing, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}
	return s.listings.Reject(ctx, id, reason)
}

// MarkSold flips a listing to sold. Only the listing's owner or an admin
// may do this; an anonymous listing can be closed only by an admin.
func (s *Service) MarkSold(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool) (*Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := listing.UserID != nil && *listing.UserID == actorID
	if !isAdmin && !isOwner {
		return nil, apperrors.ErrForbidden
	}

	return s.listings.SetSold(ctx, id)
}

// Delete removes a listing and every comment under it. Listings carry no
// denormalized counter elsewhere, so unlike reports there is nothing to
// release.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.listings.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.comments.DeleteByListing(ctx, id); err != nil {
		return err
	}
	return s.listings.Delete(ctx, id)
}

// AddComment accepts a public comment on an approved listing.
func (s *Service) AddComment(ctx context.Context, listingID primitive.ObjectID, nick, content string, userID *primitive.ObjectID) (*ListingComment, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != StatusApproved {
		return nil, apperrors.ErrValidation
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrValidation
	}

	nick = strings.TrimSpace(nick)
	if nick == "" {
		nick = nickname.Generate()
	}

	comment := &ListingComment{
		ListingID: listingID,
		Nickname:  normalize.Truncate(nick, maxNicknameLen),
		Content:   normalize.Truncate(content, maxCommentLen),
		UserID:    userID,
		CreatedAt: s.now(),
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.listings.IncrementCommentCount(ctx, listingID, 1); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes one comment and gives the count back, floored
// at zero by the store.
func (s *Service) DeleteComment(ctx context.Context, commentID primitive.ObjectID) error {
	comment, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	return s.listings.IncrementCommentCount(ctx, comment.ListingID, -1)
}

// NormalizeCategory maps unknown or empty categories to "other".
func NormalizeCategory(s string) string {
	switch s {
	case CategoryAccount, CategoryItem, CategoryService:
		return s
	default:
		return CategoryOther
	}
}
