package marketplace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type fakeSweepStore struct {
	listings map[primitive.ObjectID]*Listing
	comments map[primitive.ObjectID]primitive.ObjectID // comment -> listing

	failSetExpiry map[primitive.ObjectID]error
	failDelete    map[primitive.ObjectID]error
}

func newFakeSweepStore(listings ...*Listing) *fakeSweepStore {
	s := &fakeSweepStore{
		listings:      make(map[primitive.ObjectID]*Listing),
		comments:      make(map[primitive.ObjectID]primitive.ObjectID),
		failSetExpiry: make(map[primitive.ObjectID]error),
		failDelete:    make(map[primitive.ObjectID]error),
	}
	for _, l := range listings {
		s.listings[l.ID] = l
	}
	return s
}

func (s *fakeSweepStore) addComment(listingID primitive.ObjectID) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.comments[id] = listingID
	return id
}

func (s *fakeSweepStore) ListApprovedMissingExpiry(_ context.Context) ([]Listing, error) {
	var out []Listing
	for _, l := range s.listings {
		if l.Status == StatusApproved && l.ExpiresAt == nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *fakeSweepStore) SetExpiresAt(_ context.Context, id primitive.ObjectID, expiresAt time.Time) error {
	if err := s.failSetExpiry[id]; err != nil {
		return err
	}
	l, ok := s.listings[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	l.ExpiresAt = &expiresAt
	return nil
}

func (s *fakeSweepStore) ListExpired(_ context.Context, now time.Time) ([]Listing, error) {
	var out []Listing
	for _, l := range s.listings {
		if l.ExpiresAt != nil && !l.ExpiresAt.After(now) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *fakeSweepStore) DeleteCommentsByListing(_ context.Context, listingID primitive.ObjectID) error {
	for id, parent := range s.comments {
		if parent == listingID {
			delete(s.comments, id)
		}
	}
	return nil
}

func (s *fakeSweepStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if err := s.failDelete[id]; err != nil {
		return err
	}
	if _, ok := s.listings[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.listings, id)
	return nil
}

func newTestSweeper(store *fakeSweepStore, now time.Time) *Sweeper {
	s := NewSweeper(store, time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func timePtr(t time.Time) *time.Time { return &t }

func approvedListing(approvedAt *time.Time, expiresAt *time.Time) *Listing {
	return &Listing{
		ID:         primitive.NewObjectID(),
		Status:     StatusApproved,
		ApprovedAt: approvedAt,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunOnce_BackfillUsesApprovalTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-2 * 24 * time.Hour)
	listing := approvedListing(timePtr(approvedAt), nil)
	store := newFakeSweepStore(listing)
	sweeper := newTestSweeper(store, now)

	result, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, SweepResult{Backfilled: 1, Expired: 0}, result)
	require.Equal(t, approvedAt.Add(ExpiryWindow), *store.listings[listing.ID].ExpiresAt)
}

func TestRunOnce_BackfillFallsBackToCreatedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	listing := approvedListing(nil, nil)
	listing.CreatedAt = now.Add(-24 * time.Hour)
	store := newFakeSweepStore(listing)
	sweeper := newTestSweeper(store, now)

	result, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Backfilled)
	require.Equal(t, listing.CreatedAt.Add(ExpiryWindow), *store.listings[listing.ID].ExpiresAt)
}

func TestRunOnce_ExpiredListingDeletedWithComments(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	expired := approvedListing(nil, timePtr(now.Add(-time.Minute)))
	live := approvedListing(nil, timePtr(now.Add(time.Hour)))
	store := newFakeSweepStore(expired, live)
	store.addComment(expired.ID)
	store.addComment(expired.ID)
	keep := store.addComment(live.ID)
	sweeper := newTestSweeper(store, now)

	result, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Expired)
	require.NotContains(t, store.listings, expired.ID)
	require.Contains(t, store.listings, live.ID)
	require.Len(t, store.comments, 1)
	require.Contains(t, store.comments, keep)
}

func TestRunOnce_NeverDeletesFutureOrMissingExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	future := approvedListing(timePtr(now), timePtr(now.Add(time.Hour)))
	pendingNoExpiry := &Listing{ID: primitive.NewObjectID(), Status: StatusPending, CreatedAt: now.Add(-30 * 24 * time.Hour)}
	store := newFakeSweepStore(future, pendingNoExpiry)
	sweeper := newTestSweeper(store, now)

	result, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Zero(t, result.Expired)
	require.Len(t, store.listings, 2)
}

// A listing approved more than seven days ago with no stored expiry is
// backfilled and then expired within the same pass.
func TestRunOnce_StaleBackfillExpiresSamePass(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	listing := approvedListing(timePtr(now.Add(-10*24*time.Hour)), nil)
	store := newFakeSweepStore(listing)
	sweeper := newTestSweeper(store, now)

	result, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, SweepResult{Backfilled: 1, Expired: 1}, result)
	require.Empty(t, store.listings)
}

// Expiry is status-blind: a rejected listing whose expiresAt has passed
// is swept like any other.
func TestRunOnce_ExpiryIgnoresStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rejected := &Listing{
		ID:        primitive.NewObjectID(),
		Status:    StatusRejected,
		ExpiresAt: timePtr(now.Add(-time.Hour)),
	}
	store := newFakeSweepStore(rejected)
	sweeper := newTestSweeper(store, now)

	result, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Expired)
	require.Empty(t, store.listings)
}

func TestRunOnce_SecondRunIsNoOp(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeSweepStore(
		approvedListing(timePtr(now.Add(-10*24*time.Hour)), nil),
		approvedListing(timePtr(now.Add(-time.Hour)), nil),
		approvedListing(nil, timePtr(now.Add(-time.Minute))),
	)
	sweeper := newTestSweeper(store, now)

	first, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, SweepResult{Backfilled: 2, Expired: 2}, first)

	second, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, SweepResult{}, second)
}

func TestRunOnce_FailureOnOneListingDoesNotAbort(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	bad := approvedListing(nil, timePtr(now.Add(-time.Minute)))
	good := approvedListing(nil, timePtr(now.Add(-time.Minute)))
	noExpiryBad := approvedListing(timePtr(now), nil)
	noExpiryGood := approvedListing(timePtr(now), nil)

	store := newFakeSweepStore(bad, good, noExpiryBad, noExpiryGood)
	store.failDelete[bad.ID] = errors.New("write conflict")
	store.failSetExpiry[noExpiryBad.ID] = errors.New("write conflict")
	sweeper := newTestSweeper(store, now)

	result, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Backfilled)
	require.Equal(t, 1, result.Expired)
	require.Contains(t, store.listings, bad.ID)
	require.NotContains(t, store.listings, good.ID)
	require.NotNil(t, store.listings[noExpiryGood.ID].ExpiresAt)
	require.Nil(t, store.listings[noExpiryBad.ID].ExpiresAt)
}

func TestSweeper_StartStop(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	listing := approvedListing(nil, timePtr(now.Add(-time.Minute)))
	store := newFakeSweepStore(listing)

	sweeper := NewSweeper(store, time.Hour)
	sweeper.now = func() time.Time { return now }

	sweeper.Start()
	sweeper.Start() // second Start is a no-op
	sweeper.Stop()

	// The initial pass ran before Stop returned.
	require.Empty(t, store.listings)

	// Stop on a stopped sweeper is safe.
	sweeper.Stop()
}
