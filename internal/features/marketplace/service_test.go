package marketplace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type fakeListingStore struct {
	listings map[primitive.ObjectID]*Listing
}

func newFakeListingStore(listings ...*Listing) *fakeListingStore {
	s := &fakeListingStore{listings: make(map[primitive.ObjectID]*Listing)}
	for _, l := range listings {
		s.listings[l.ID] = l
	}
	return s
}

func (s *fakeListingStore) get(id primitive.ObjectID) (*Listing, error) {
	l, ok := s.listings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return l, nil
}

func (s *fakeListingStore) GetByID(_ context.Context, id primitive.ObjectID) (*Listing, error) {
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	copied := *l
	return &copied, nil
}

func (s *fakeListingStore) Approve(_ context.Context, id, adminID primitive.ObjectID, approvedAt, expiresAt time.Time) (*Listing, error) {
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	l.Status = StatusApproved
	l.ApprovedAt = &approvedAt
	l.ApprovedBy = &adminID
	l.ExpiresAt = &expiresAt
	l.RejectionReason = ""
	copied := *l
	return &copied, nil
}

func (s *fakeListingStore) Reject(_ context.Context, id primitive.ObjectID, reason string) (*Listing, error) {
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	l.Status = StatusRejected
	l.RejectionReason = reason
	copied := *l
	return &copied, nil
}

func (s *fakeListingStore) SetSold(_ context.Context, id primitive.ObjectID) (*Listing, error) {
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	l.Status = StatusSold
	copied := *l
	return &copied, nil
}

func (s *fakeListingStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.listings[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.listings, id)
	return nil
}

func (s *fakeListingStore) IncrementCommentCount(_ context.Context, id primitive.ObjectID, delta int) error {
	l, err := s.get(id)
	if err != nil {
		return err
	}
	l.CommentCount += delta
	if l.CommentCount < 0 {
		l.CommentCount = 0
	}
	return nil
}

type fakeListingCommentStore struct {
	comments map[primitive.ObjectID]*ListingComment
}

func newFakeListingCommentStore() *fakeListingCommentStore {
	return &fakeListingCommentStore{comments: make(map[primitive.ObjectID]*ListingComment)}
}

func (s *fakeListingCommentStore) Insert(_ context.Context, comment *ListingComment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeListingCommentStore) Delete(_ context.Context, id primitive.ObjectID) (*ListingComment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	delete(s.comments, id)
	return c, nil
}

func (s *fakeListingCommentStore) DeleteByListing(_ context.Context, listingID primitive.ObjectID) error {
	for id, c := range s.comments {
		if c.ListingID == listingID {
			delete(s.comments, id)
		}
	}
	return nil
}

func newListingService(store *fakeListingStore, at time.Time) (*Service, *fakeListingCommentStore) {
	comments := newFakeListingCommentStore()
	svc := NewService(store, comments)
	svc.now = func() time.Time { return at }
	return svc, comments
}

func TestApprove_StampsExpiryAndClearsRejection(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	listing := &Listing{
		ID:              primitive.NewObjectID(),
		Status:          StatusRejected,
		RejectionReason: "spam",
	}
	store := newFakeListingStore(listing)
	svc, _ := newListingService(store, now)
	adminID := primitive.NewObjectID()

	approved, err := svc.Approve(context.Background(), listing.ID, adminID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status)
	require.Equal(t, now, *approved.ApprovedAt)
	require.Equal(t, now.Add(ExpiryWindow), *approved.ExpiresAt)
	require.Equal(t, adminID, *approved.ApprovedBy)
	require.Empty(t, approved.RejectionReason)
}

func TestReject_DefaultsReason(t *testing.T) {
	listing := &Listing{ID: primitive.NewObjectID(), Status: StatusPending}
	svc, _ := newListingService(newFakeListingStore(listing), time.Now())

	rejected, err := svc.Reject(context.Background(), listing.ID, "   ")
	require.NoError(t, err)
	require.Equal(t, StatusRejected, rejected.Status)
	require.Equal(t, DefaultRejectionReason, rejected.RejectionReason)
}

func TestReject_KeepsGivenReason(t *testing.T) {
	listing := &Listing{ID: primitive.NewObjectID(), Status: StatusPending}
	svc, _ := newListingService(newFakeListingStore(listing), time.Now())

	rejected, err := svc.Reject(context.Background(), listing.ID, "counterfeit goods")
	require.NoError(t, err)
	require.Equal(t, "counterfeit goods", rejected.RejectionReason)
}

func TestMarkSold_Ownership(t *testing.T) {
	ownerID := primitive.NewObjectID()

	tests := []struct {
		name    string
		actorID primitive.ObjectID
		isAdmin bool
		wantErr error
	}{
		{"owner", ownerID, false, nil},
		{"admin", primitive.NewObjectID(), true, nil},
		{"stranger", primitive.NewObjectID(), false, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := &Listing{
				ID:     primitive.NewObjectID(),
				Status: StatusApproved,
				UserID: &ownerID,
			}
			svc, _ := newListingService(newFakeListingStore(listing), time.Now())

			sold, err := svc.MarkSold(context.Background(), listing.ID, tt.actorID, tt.isAdmin)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, StatusSold, sold.Status)
		})
	}
}

func TestMarkSold_AnonymousListingRequiresAdmin(t *testing.T) {
	listing := &Listing{ID: primitive.NewObjectID(), Status: StatusApproved}
	svc, _ := newListingService(newFakeListingStore(listing), time.Now())

	_, err := svc.MarkSold(context.Background(), listing.ID, primitive.NewObjectID(), false)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	sold, err := svc.MarkSold(context.Background(), listing.ID, primitive.NewObjectID(), true)
	require.NoError(t, err)
	require.Equal(t, StatusSold, sold.Status)
}

func TestDelete_CascadesComments(t *testing.T) {
	listing := &Listing{ID: primitive.NewObjectID(), Status: StatusApproved}
	other := &Listing{ID: primitive.NewObjectID(), Status: StatusApproved}
	store := newFakeListingStore(listing, other)
	svc, comments := newListingService(store, time.Now())

	require.NoError(t, comments.Insert(context.Background(), &ListingComment{ListingID: listing.ID}))
	require.NoError(t, comments.Insert(context.Background(), &ListingComment{ListingID: listing.ID}))
	require.NoError(t, comments.Insert(context.Background(), &ListingComment{ListingID: other.ID}))

	require.NoError(t, svc.Delete(context.Background(), listing.ID))
	require.NotContains(t, store.listings, listing.ID)
	require.Len(t, comments.comments, 1)
}

func TestAddComment_OnlyApprovedListings(t *testing.T) {
	for _, status := range []string{StatusPending, StatusRejected, StatusSold} {
		t.Run(status, func(t *testing.T) {
			listing := &Listing{ID: primitive.NewObjectID(), Status: status}
			svc, _ := newListingService(newFakeListingStore(listing), time.Now())

			_, err := svc.AddComment(context.Background(), listing.ID, "buyer", "still available?", nil)
			require.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestAddComment_IncrementsCount(t *testing.T) {
	listing := &Listing{ID: primitive.NewObjectID(), Status: StatusApproved}
	store := newFakeListingStore(listing)
	svc, _ := newListingService(store, time.Now())

	comment, err := svc.AddComment(context.Background(), listing.ID, "", "still available?", nil)
	require.NoError(t, err)
	require.NotEmpty(t, comment.Nickname)
	require.Equal(t, 1, store.listings[listing.ID].CommentCount)
}

func TestDeleteComment_FloorsCountAtZero(t *testing.T) {
	listing := &Listing{ID: primitive.NewObjectID(), Status: StatusApproved}
	store := newFakeListingStore(listing)
	svc, comments := newListingService(store, time.Now())

	comment := &ListingComment{ListingID: listing.ID}
	require.NoError(t, comments.Insert(context.Background(), comment))

	// Count was never incremented for this comment; deletion must not
	// push it below zero.
	require.NoError(t, svc.DeleteComment(context.Background(), comment.ID))
	require.Zero(t, store.listings[listing.ID].CommentCount)
}

func TestNormalizeCategory(t *testing.T) {
	require.Equal(t, CategoryAccount, NormalizeCategory("account"))
	require.Equal(t, CategoryOther, NormalizeCategory(""))
	require.Equal(t, CategoryOther, NormalizeCategory("vehicles"))
}
