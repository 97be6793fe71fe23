package reports

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/pkg/logger"
	"github.com/scamwatch/api-go/internal/pkg/nickname"
	"github.com/scamwatch/api-go/internal/pkg/normalize"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

const (
	maxNicknameLen = 50
	maxCommentLen  = 1000
)

// ReportStore is the persistence surface the service needs for reports.
type ReportStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*Report, error)
	// UpdateStatus writes only the status and updated timestamp, leaving
	// the rest of the document untouched so legacy reports with fields
	// that would no longer validate can still be moderated.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Report, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncrementCommentCount applies an atomic delta, clamped at zero.
	IncrementCommentCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

// ProfileCounter mutates a profile's denormalized verified-report
// counter. Implementations must use an atomic increment, not a
// read-modify-write of the profile document.
type ProfileCounter interface {
	IncrementNegativeReports(ctx context.Context, id primitive.ObjectID, delta int) error
}

// CommentStore persists report comments.
type CommentStore interface {
	Insert(ctx context.Context, comment *Comment) error
	// Delete removes one comment and returns it so the caller can adjust
	// the parent's counter.
	Delete(ctx context.Context, id primitive.ObjectID) (*Comment, error)
	DeleteByReport(ctx context.Context, reportID primitive.ObjectID) error
}

// EvidenceStore removes stored evidence assets. Deletion is best-effort:
// the report service discards every error it returns.
type EvidenceStore interface {
	Delete(ctx context.Context, path string) error
}

// Service owns the report lifecycle: the status transitions that keep
// profile counters consistent, and the cascades on delete.
type Service struct {
	reports  ReportStore
	profiles ProfileCounter
	comments CommentStore
	evidence EvidenceStore
}

func NewService(reports ReportStore, profiles ProfileCounter, comments CommentStore, evidence EvidenceStore) *Service {
	return &Service{
		reports:  reports,
		profiles: profiles,
		comments: comments,
		evidence: evidence,
	}
}

// SetStatus transitions a report and keeps the linked profile's negative
// counter in sync. The counter moves only when the transition crosses
// the verified boundary: +1 entering verified, -1 leaving it. Re-setting
// the current status is a no-op for the counter.
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, newStatus string) (*Report, error) {
	if !IsValidStatus(newStatus) {
		return nil, apperrors.ErrValidation
	}

	// prevStatus must come from a read before the write; it cannot be
	// inferred from the update response.
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prevStatus := report.Status

	updated, err := s.reports.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	if report.ProfileID != nil {
		switch {
		case prevStatus != StatusVerified && newStatus == StatusVerified:
			err = s.profiles.IncrementNegativeReports(ctx, *report.ProfileID, 1)
		case prevStatus == StatusVerified && newStatus != StatusVerified:
			err = s.profiles.IncrementNegativeReports(ctx, *report.ProfileID, -1)
		}
		if err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// Delete removes a report with its cascades: the profile counter is
// released when the report was verified, evidence files are removed
// best-effort, and dependent comments are dropped.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if report.ProfileID != nil && report.Status == StatusVerified {
		if err := s.profiles.IncrementNegativeReports(ctx, *report.ProfileID, -1); err != nil {
			return err
		}
	}

	for _, path := range report.Evidence {
		if err := s.evidence.Delete(ctx, path); err != nil {
			logger.Warn("evidence cleanup failed for %s: %v", path, err)
		}
	}

	if err := s.comments.DeleteByReport(ctx, id); err != nil {
		return err
	}

	return s.reports.Delete(ctx, id)
}

// AddComment appends an anonymous comment to a verified report. Reports
// in any other status are not commentable and read as not found, same
// as the public detail page.
func (s *Service) AddComment(ctx context.Context, reportID primitive.ObjectID, nick, content string) (*Comment, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != StatusVerified {
		return nil, apperrors.ErrNotFound
	}

	content = normalize.Truncate(content, maxCommentLen)
	if content == "" {
		return nil, apperrors.ErrValidation
	}

	nick = normalize.Truncate(nick, maxNicknameLen)
	if nick == "" {
		nick = nickname.Generate()
	}

	comment := &Comment{
		ReportID: reportID,
		Nickname: nick,
		Content:  content,
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.reports.IncrementCommentCount(ctx, reportID, 1); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes one comment and decrements the parent's counter,
// clamped at zero.
func (s *Service) DeleteComment(ctx context.Context, commentID primitive.ObjectID) error {
	comment, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return err
	}

	return s.reports.IncrementCommentCount(ctx, comment.ReportID, -1)
}

// IsValidStatus reports whether s is a known report status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected, StatusResolved:
		return true
	}
	return false
}

// IsValidChannel reports whether s is a known report channel.
func IsValidChannel(s string) bool {
	return s == ChannelBank || s == ChannelWebsite
}

// NormalizeReportType maps unknown or empty types to "scam".
func NormalizeReportType(s string) string {
	switch strings.TrimSpace(s) {
	case TypeFraud, TypeFakeProfile, TypeOther:
		return strings.TrimSpace(s)
	default:
		return TypeScam
	}
}
