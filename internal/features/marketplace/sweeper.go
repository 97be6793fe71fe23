package marketplace

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/pkg/logger"
)

// SweepStore is the persistence surface the expiry sweep needs.
type SweepStore interface {
	// ListApprovedMissingExpiry returns approved listings that predate
	// expiry tracking or lost their expiresAt.
	ListApprovedMissingExpiry(ctx context.Context) ([]Listing, error)
	SetExpiresAt(ctx context.Context, id primitive.ObjectID, expiresAt time.Time) error
	// ListExpired returns every listing whose expiresAt has passed,
	// whatever its status.
	ListExpired(ctx context.Context, now time.Time) ([]Listing, error)
	DeleteCommentsByListing(ctx context.Context, listingID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Sweeper periodically backfills missing listing expiries and deletes
// expired listings with their comments. One pass runs at Start and then
// once per interval until Stop.
type Sweeper struct {
	store    SweepStore
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewSweeper(store SweepStore, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{store: store, interval: interval, now: time.Now}
}

// Start launches the background loop. Calling Start on a running
// sweeper is a no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

// Stop terminates the loop and waits for an in-flight pass to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *Sweeper) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	s.runLogged()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runLogged()
		case <-stop:
			return
		}
	}
}

func (s *Sweeper) runLogged() {
	result, err := s.RunOnce(context.Background())
	if err != nil {
		logger.Error("listing expiry sweep failed: %v", err)
		return
	}
	if result.Backfilled > 0 || result.Expired > 0 {
		logger.Info("listing expiry sweep: backfilled=%d expired=%d", result.Backfilled, result.Expired)
	}
}

// RunOnce executes a single sweep pass and reports what it did. A
// backfill whose computed expiry is already in the past is picked up by
// the expiry scan of the same pass. Failures on individual listings are
// logged and skipped so one bad document cannot stall the sweep, which
// makes the pass safe to rerun: a second immediate run finds nothing
// left to backfill or expire.
func (s *Sweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	var result SweepResult
	now := s.now()

	missing, err := s.store.ListApprovedMissingExpiry(ctx)
	if err != nil {
		return result, err
	}
	for _, listing := range missing {
		base := now
		if listing.ApprovedAt != nil {
			base = *listing.ApprovedAt
		} else if !listing.CreatedAt.IsZero() {
			base = listing.CreatedAt
		}
		if err := s.store.SetExpiresAt(ctx, listing.ID, base.Add(ExpiryWindow)); err != nil {
			logger.Warn("backfill expiresAt for listing %s failed: %v", listing.ID.Hex(), err)
			continue
		}
		result.Backfilled++
	}

	expired, err := s.store.ListExpired(ctx, now)
	if err != nil {
		return result, err
	}
	for _, listing := range expired {
		if err := s.store.DeleteCommentsByListing(ctx, listing.ID); err != nil {
			logger.Warn("delete comments of expired listing %s failed: %v", listing.ID.Hex(), err)
			continue
		}
		if err := s.store.Delete(ctx, listing.ID); err != nil {
			logger.Warn("delete expired listing %s failed: %v", listing.ID.Hex(), err)
			continue
		}
		result.Expired++
	}

	return result, nil
}
