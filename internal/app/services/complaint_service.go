package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	appauth "github.com/univoice/backend/internal/app/auth"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/app/repositories"
	"github.com/univoice/backend/internal/pkg/apperrors"
	"github.com/univoice/backend/internal/pkg/moderation"
)

// ComplaintStore is the slice of the complaint repository the lifecycle
// service needs.
type ComplaintStore interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) (int64, error)
	GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error)
	ListComplaints(ctx context.Context, filter repositories.ComplaintFilter) ([]*models.Complaint, error)
	UpdateComplaint(ctx context.Context, id int64, update *models.ComplaintUpdate) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, id int64) error
	CountComplaintsByStatus(ctx context.Context, hostelID int64) (map[models.ComplaintStatus]int64, error)
}

// ComplaintService defines the interface for the complaint lifecycle
type ComplaintService interface {
	FileComplaint(ctx context.Context, actor models.Actor, req *dto.FileComplaintRequest) (*models.Complaint, error)
	GetComplaint(ctx context.Context, actor models.Actor, id int64) (*models.Complaint, error)
	ListComplaints(ctx context.Context, actor models.Actor, status *models.ComplaintStatus) ([]*models.Complaint, error)
	WardenQueue(ctx context.Context, actor models.Actor) (*dto.ComplaintQueue, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateStatusRequest) (*models.Complaint, error)
	Triage(ctx context.Context, actor models.Actor, id int64, req *dto.TriageRequest) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, actor models.Actor, id int64) error
	CountsByHostel(ctx context.Context, actor models.Actor, hostelID int64) (*dto.ComplaintCounts, error)
}

// complaintServiceImpl implements the ComplaintService interface
type complaintServiceImpl struct {
	complaints ComplaintStore
	users      appauth.UserDirectory
	authz      *appauth.AuthorizationService
	filter     *moderation.Filter
	logger     zerolog.Logger
}

// NewComplaintService creates a new complaint service instance
func NewComplaintService(
	complaints ComplaintStore,
	users appauth.UserDirectory,
	authz *appauth.AuthorizationService,
	filter *moderation.Filter,
	logger zerolog.Logger,
) ComplaintService {
	return &complaintServiceImpl{
		complaints: complaints,
		users:      users,
		authz:      authz,
		filter:     filter,
		logger:     logger,
	}
}

// FileComplaint creates a new complaint for the acting student. The
// submission passes through the moderation filter exactly once: an abusive
// verdict parks the complaint in FLAGGED with the abuse flag set, a clean one
// starts it in PENDING. The student's hostel is snapshotted onto the
// complaint and never re-derived.
func (s *complaintServiceImpl) FileComplaint(ctx context.Context, actor models.Actor, req *dto.FileComplaintRequest) (*models.Complaint, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students can file complaints")
	}

	if strings.TrimSpace(req.Heading) == "" {
		return nil, apperrors.NewValidationError("heading cannot be empty")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.NewValidationError("description cannot be empty")
	}
	category := models.Category(strings.ToUpper(req.Category))
	if !category.IsValid() {
		return nil, apperrors.NewValidationError("unknown complaint category")
	}

	student, err := s.users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading filing student: %w", err)
	}
	if student.HostelID == nil {
		return nil, apperrors.NewValidationError("student is not assigned to a hostel")
	}

	abusive := s.filter.Classify(req.Heading, req.Description)
	status := models.StatusPending
	if abusive {
		status = models.StatusFlagged
	}

	complaint := &models.Complaint{
		Heading:     req.Heading,
		Description: req.Description,
		Category:    category,
		Status:      status,
		IsAbusive:   abusive,
		UserID:      student.ID,
		HostelID:    *student.HostelID,
	}

	if _, err := s.complaints.CreateComplaint(ctx, complaint); err != nil {
		return nil, fmt.Errorf("error creating complaint: %w", err)
	}

	if abusive {
		s.logger.Warn().Int64("complaintID", complaint.ID).Int64("studentID", student.ID).
			Msg("Complaint flagged by moderation filter")
	}

	return complaint, nil
}

// GetComplaint retrieves one complaint if it falls in the actor's visible set
func (s *complaintServiceImpl) GetComplaint(ctx context.Context, actor models.Actor, id int64) (*models.Complaint, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid complaint ID")
	}

	complaint, err := s.complaints.GetComplaintByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateView(ctx, actor, complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}

// ListComplaints retrieves the actor's visible set, optionally narrowed to
// one status. Wardens get their queue ordering (urgent open complaints
// first); everyone else gets insertion order.
func (s *complaintServiceImpl) ListComplaints(ctx context.Context, actor models.Actor, status *models.ComplaintStatus) ([]*models.Complaint, error) {
	filter, err := s.authz.VisibleFilter(ctx, actor)
	if err != nil {
		return nil, err
	}
	filter.Status = status

	complaints, err := s.complaints.ListComplaints(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing complaints: %w", err)
	}

	return complaints, nil
}

// WardenQueue retrieves the acting warden's complaints grouped into
// dashboard buckets, newest first within each bucket.
func (s *complaintServiceImpl) WardenQueue(ctx context.Context, actor models.Actor) (*dto.ComplaintQueue, error) {
	if actor.Role != models.RoleWarden {
		return nil, apperrors.NewForbiddenError("only wardens have a complaint queue")
	}

	complaints, err := s.ListComplaints(ctx, actor, nil)
	if err != nil {
		return nil, err
	}

	queue := &dto.ComplaintQueue{
		Urgent:     []*models.Complaint{},
		Pending:    []*models.Complaint{},
		InProgress: []*models.Complaint{},
		Completed:  []*models.Complaint{},
		Archived:   []*models.Complaint{},
	}

	for _, c := range complaints {
		switch {
		case c.Status == models.StatusFlagged:
			queue.Archived = append(queue.Archived, c)
		case c.Status == models.StatusResolved || c.Status == models.StatusRejected:
			queue.Completed = append(queue.Completed, c)
		case c.IsUrgent:
			queue.Urgent = append(queue.Urgent, c)
		case c.Status == models.StatusInProgress:
			queue.InProgress = append(queue.InProgress, c)
		default:
			queue.Pending = append(queue.Pending, c)
		}
	}

	return queue, nil
}

// UpdateStatus applies a warden status transition. The resolver checks the
// actor may touch the complaint at all; the state machine then decides
// whether the move is legal: terminal states (RESOLVED, REJECTED, FLAGGED)
// admit no transition, every other move between operational states is
// allowed. A transition to RESOLVED stamps the resolution date; any other
// target clears it.
func (s *complaintServiceImpl) UpdateStatus(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateStatusRequest) (*models.Complaint, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid complaint ID")
	}

	target := models.ComplaintStatus(strings.ToUpper(req.Status))
	if !target.IsValid() || target == models.StatusFlagged {
		return nil, apperrors.NewValidationError("unknown target status")
	}

	complaint, err := s.complaints.GetComplaintByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateTransition(ctx, actor, complaint); err != nil {
		return nil, err
	}

	if !complaint.Status.CanTransitionTo(target) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrInvalidTransition,
			Message: fmt.Sprintf("cannot move complaint from %s to %s", complaint.Status, target),
		}
	}

	update := &models.ComplaintUpdate{
		Status:        &target,
		WardenComment: req.Comment,
	}
	if target == models.StatusResolved {
		now := time.Now()
		update.ResolvedAt = &now
	} else {
		update.ClearResolvedAt = true
	}

	updated, err := s.complaints.UpdateComplaint(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("error updating complaint status: %w", err)
	}

	s.logger.Info().Int64("complaintID", id).Int64("wardenID", actor.UserID).
		Str("from", string(complaint.Status)).Str("to", string(target)).
		Msg("Complaint status updated")

	return updated, nil
}

// Triage applies a mentor's escalation: the urgency flag and the mentor
// comment. Both are orthogonal to status and may be set at any time; neither
// ever changes the complaint's state.
func (s *complaintServiceImpl) Triage(ctx context.Context, actor models.Actor, id int64, req *dto.TriageRequest) (*models.Complaint, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid complaint ID")
	}

	complaint, err := s.complaints.GetComplaintByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateTriage(ctx, actor, complaint); err != nil {
		return nil, err
	}

	update := &models.ComplaintUpdate{
		IsUrgent:      req.IsUrgent,
		MentorComment: req.Comment,
	}

	updated, err := s.complaints.UpdateComplaint(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("error triaging complaint: %w", err)
	}

	return updated, nil
}

// DeleteComplaint permanently removes a complaint. Admin only; deletion is
// the admin's sole complaint mutation.
func (s *complaintServiceImpl) DeleteComplaint(ctx context.Context, actor models.Actor, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid complaint ID")
	}

	if err := s.authz.ValidateDelete(actor); err != nil {
		return err
	}

	if err := s.complaints.DeleteComplaint(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("complaintID", id).Msg("Complaint deleted by admin")
	return nil
}

// CountsByHostel returns per-status complaint totals for one hostel, for the
// admin complaints manager.
func (s *complaintServiceImpl) CountsByHostel(ctx context.Context, actor models.Actor, hostelID int64) (*dto.ComplaintCounts, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}
	if hostelID <= 0 {
		return nil, apperrors.NewValidationError("invalid hostel ID")
	}

	counts, err := s.complaints.CountComplaintsByStatus(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("error counting complaints: %w", err)
	}

	return &dto.ComplaintCounts{HostelID: hostelID, Counts: counts}, nil
}
