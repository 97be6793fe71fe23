package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type fakeReportStore struct {
	reports map[primitive.ObjectID]*Report
}

func newFakeReportStore(reports ...*Report) *fakeReportStore {
	s := &fakeReportStore{reports: make(map[primitive.ObjectID]*Report)}
	for _, r := range reports {
		s.reports[r.ID] = r
	}
	return s
}

func (s *fakeReportStore) GetByID(_ context.Context, id primitive.ObjectID) (*Report, error) {
	r, ok := s.reports[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *fakeReportStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*Report, error) {
	r, ok := s.reports[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	r.Status = status
	copied := *r
	return &copied, nil
}

func (s *fakeReportStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.reports[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

func (s *fakeReportStore) IncrementCommentCount(_ context.Context, id primitive.ObjectID, delta int) error {
	r, ok := s.reports[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	r.CommentCount += delta
	if r.CommentCount < 0 {
		r.CommentCount = 0
	}
	return nil
}

type fakeProfileCounter struct {
	counts map[primitive.ObjectID]int
	calls  int
}

func newFakeProfileCounter() *fakeProfileCounter {
	return &fakeProfileCounter{counts: make(map[primitive.ObjectID]int)}
}

func (c *fakeProfileCounter) IncrementNegativeReports(_ context.Context, id primitive.ObjectID, delta int) error {
	c.calls++
	c.counts[id] += delta
	if c.counts[id] < 0 {
		c.counts[id] = 0
	}
	return nil
}

type fakeCommentStore struct {
	comments map[primitive.ObjectID]*Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[primitive.ObjectID]*Comment)}
}

func (s *fakeCommentStore) Insert(_ context.Context, comment *Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id primitive.ObjectID) (*Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	delete(s.comments, id)
	return c, nil
}

func (s *fakeCommentStore) DeleteByReport(_ context.Context, reportID primitive.ObjectID) error {
	for id, c := range s.comments {
		if c.ReportID == reportID {
			delete(s.comments, id)
		}
	}
	return nil
}

type fakeEvidenceStore struct {
	deleted []string
	err     error
}

func (s *fakeEvidenceStore) Delete(_ context.Context, path string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, path)
	return nil
}

func newTestService(reports *fakeReportStore) (*Service, *fakeProfileCounter, *fakeCommentStore, *fakeEvidenceStore) {
	profiles := newFakeProfileCounter()
	comments := newFakeCommentStore()
	evidence := &fakeEvidenceStore{}
	return NewService(reports, profiles, comments, evidence), profiles, comments, evidence
}

func linkedReport(status string, profileID primitive.ObjectID) *Report {
	return &Report{
		ID:        primitive.NewObjectID(),
		ProfileID: &profileID,
		Status:    status,
	}
}

func TestSetStatus_CounterFollowsVerifiedBoundary(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		to        string
		wantDelta int
	}{
		{"pending to verified", StatusPending, StatusVerified, 1},
		{"rejected to verified", StatusRejected, StatusVerified, 1},
		{"verified to rejected", StatusVerified, StatusRejected, -1},
		{"verified to resolved", StatusVerified, StatusResolved, -1},
		{"verified to pending", StatusVerified, StatusPending, -1},
		{"pending to rejected", StatusPending, StatusRejected, 0},
		{"rejected to resolved", StatusRejected, StatusResolved, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileID := primitive.NewObjectID()
			report := linkedReport(tt.from, profileID)
			svc, profiles, _, _ := newTestService(newFakeReportStore(report))
			profiles.counts[profileID] = 3

			updated, err := svc.SetStatus(context.Background(), report.ID, tt.to)
			require.NoError(t, err)
			require.Equal(t, tt.to, updated.Status)
			require.Equal(t, 3+tt.wantDelta, profiles.counts[profileID])
		})
	}
}

func TestSetStatus_SameStatusLeavesCounterAlone(t *testing.T) {
	for _, status := range []string{StatusPending, StatusVerified, StatusRejected, StatusResolved} {
		t.Run(status, func(t *testing.T) {
			profileID := primitive.NewObjectID()
			report := linkedReport(status, profileID)
			svc, profiles, _, _ := newTestService(newFakeReportStore(report))

			_, err := svc.SetStatus(context.Background(), report.ID, status)
			require.NoError(t, err)
			require.Zero(t, profiles.calls)
		})
	}
}

// A report cycled pending -> verified -> rejected -> verified must leave
// the profile counter exactly one above where it started.
func TestSetStatus_TransitionCycle(t *testing.T) {
	profileID := primitive.NewObjectID()
	report := linkedReport(StatusPending, profileID)
	svc, profiles, _, _ := newTestService(newFakeReportStore(report))

	for _, status := range []string{StatusVerified, StatusRejected, StatusVerified} {
		_, err := svc.SetStatus(context.Background(), report.ID, status)
		require.NoError(t, err)
	}

	require.Equal(t, 1, profiles.counts[profileID])
}

func TestSetStatus_NoProfileLink(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusPending}
	svc, profiles, _, _ := newTestService(newFakeReportStore(report))

	updated, err := svc.SetStatus(context.Background(), report.ID, StatusVerified)
	require.NoError(t, err)
	require.Equal(t, StatusVerified, updated.Status)
	require.Zero(t, profiles.calls)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusPending}
	svc, _, _, _ := newTestService(newFakeReportStore(report))

	_, err := svc.SetStatus(context.Background(), report.ID, "archived")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSetStatus_NotFound(t *testing.T) {
	svc, profiles, _, _ := newTestService(newFakeReportStore())

	_, err := svc.SetStatus(context.Background(), primitive.NewObjectID(), StatusVerified)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Zero(t, profiles.calls)
}

func TestDelete_VerifiedReleasesCounter(t *testing.T) {
	profileID := primitive.NewObjectID()
	report := linkedReport(StatusVerified, profileID)
	svc, profiles, _, _ := newTestService(newFakeReportStore(report))
	profiles.counts[profileID] = 2

	require.NoError(t, svc.Delete(context.Background(), report.ID))
	require.Equal(t, 1, profiles.counts[profileID])
}

func TestDelete_UnverifiedLeavesCounter(t *testing.T) {
	profileID := primitive.NewObjectID()
	report := linkedReport(StatusPending, profileID)
	svc, profiles, _, _ := newTestService(newFakeReportStore(report))
	profiles.counts[profileID] = 2

	require.NoError(t, svc.Delete(context.Background(), report.ID))
	require.Equal(t, 2, profiles.counts[profileID])
	require.Zero(t, profiles.calls)
}

func TestDelete_EvidenceFailureDoesNotAbort(t *testing.T) {
	report := &Report{
		ID:       primitive.NewObjectID(),
		Status:   StatusVerified,
		Evidence: []string{"https://res.cloudinary.com/demo/image/upload/v1/reports/a.jpg"},
	}
	store := newFakeReportStore(report)
	profiles := newFakeProfileCounter()
	comments := newFakeCommentStore()
	evidence := &fakeEvidenceStore{err: errors.New("cloudinary unavailable")}
	svc := NewService(store, profiles, comments, evidence)

	require.NoError(t, svc.Delete(context.Background(), report.ID))
	require.Empty(t, store.reports)
}

func TestDelete_CascadesComments(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusVerified}
	other := &Report{ID: primitive.NewObjectID(), Status: StatusVerified}
	svc, _, comments, _ := newTestService(newFakeReportStore(report, other))

	require.NoError(t, comments.Insert(context.Background(), &Comment{ReportID: report.ID}))
	require.NoError(t, comments.Insert(context.Background(), &Comment{ReportID: other.ID}))

	require.NoError(t, svc.Delete(context.Background(), report.ID))
	require.Len(t, comments.comments, 1)
	for _, c := range comments.comments {
		require.Equal(t, other.ID, c.ReportID)
	}
}

func TestAddComment_OnlyVerifiedReports(t *testing.T) {
	for _, status := range []string{StatusPending, StatusRejected, StatusResolved} {
		t.Run(status, func(t *testing.T) {
			report := &Report{ID: primitive.NewObjectID(), Status: status}
			svc, _, _, _ := newTestService(newFakeReportStore(report))

			_, err := svc.AddComment(context.Background(), report.ID, "", "looks scammy")
			require.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

func TestAddComment_GeneratesNickname(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusVerified}
	store := newFakeReportStore(report)
	svc, _, _, _ := newTestService(store)

	comment, err := svc.AddComment(context.Background(), report.ID, "   ", "lost 500 to this account")
	require.NoError(t, err)
	require.NotEmpty(t, comment.Nickname)
	require.Equal(t, 1, store.reports[report.ID].CommentCount)
}

func TestAddComment_TruncatesLongContent(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusVerified}
	svc, _, _, _ := newTestService(newFakeReportStore(report))

	long := make([]rune, maxCommentLen+200)
	for i := range long {
		long[i] = 'x'
	}

	comment, err := svc.AddComment(context.Background(), report.ID, "anon", string(long))
	require.NoError(t, err)
	require.Len(t, []rune(comment.Content), maxCommentLen)
}

func TestAddComment_EmptyContent(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusVerified}
	svc, _, _, _ := newTestService(newFakeReportStore(report))

	_, err := svc.AddComment(context.Background(), report.ID, "anon", "   ")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteComment_DecrementsCount(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusVerified}
	store := newFakeReportStore(report)
	svc, _, _, _ := newTestService(store)

	comment, err := svc.AddComment(context.Background(), report.ID, "anon", "first")
	require.NoError(t, err)
	require.Equal(t, 1, store.reports[report.ID].CommentCount)

	require.NoError(t, svc.DeleteComment(context.Background(), comment.ID))
	require.Zero(t, store.reports[report.ID].CommentCount)
}

func TestCommentCountNeverNegative(t *testing.T) {
	report := &Report{ID: primitive.NewObjectID(), Status: StatusVerified}
	store := newFakeReportStore(report)

	require.NoError(t, store.IncrementCommentCount(context.Background(), report.ID, -5))
	require.Zero(t, store.reports[report.ID].CommentCount)
}

func TestNormalizeReportType(t *testing.T) {
	require.Equal(t, TypeFraud, NormalizeReportType("fraud"))
	require.Equal(t, TypeScam, NormalizeReportType(""))
	require.Equal(t, TypeScam, NormalizeReportType("scam"))
	require.Equal(t, TypeScam, NormalizeReportType("something-else"))
}
