package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/repositories"
	"github.com/univoice/backend/internal/pkg/apperrors"
	"github.com/univoice/backend/internal/pkg/logger"
)

// UserDirectory is the slice of the user store the resolver needs to walk the
// assignment graph (warden→hostel, student→mentor).
type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthorizationService is the single place the role/permission table lives.
// It computes, per actor, which complaints are visible and which mutations
// are allowed. The admin sees everything and may only delete. A student sees
// their own complaints and is read-only after creation. A mentor sees their
// mentees' complaints and may set the urgency flag and mentor comment. A
// warden sees their own hostel's complaints and may transition status and set
// the warden comment.
//
// Callers enforce the result; the resolver itself never mutates anything.
type AuthorizationService struct {
	users UserDirectory
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users UserDirectory) *AuthorizationService {
	return &AuthorizationService{users: users}
}

// VisibleFilter computes the complaint filter matching the actor's visible
// set. The repository applies it verbatim, so list queries never return a
// complaint the actor may not see.
func (s *AuthorizationService) VisibleFilter(ctx context.Context, actor models.Actor) (repositories.ComplaintFilter, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return repositories.ComplaintFilter{}, nil
	case models.RoleStudent:
		userID := actor.UserID
		return repositories.ComplaintFilter{UserID: &userID}, nil
	case models.RoleMentor:
		mentorID := actor.UserID
		return repositories.ComplaintFilter{MentorID: &mentorID}, nil
	case models.RoleWarden:
		warden, err := s.users.GetUserByID(ctx, actor.UserID)
		if err != nil {
			return repositories.ComplaintFilter{}, fmt.Errorf("error resolving warden hostel: %w", err)
		}
		// An unassigned warden has an empty queue; hostel ids start at 1 so
		// filtering on zero matches nothing.
		hostelID := int64(0)
		if warden.HostelID != nil {
			hostelID = *warden.HostelID
		}
		return repositories.ComplaintFilter{HostelID: &hostelID, UrgentFirst: true}, nil
	}
	return repositories.ComplaintFilter{}, apperrors.NewForbiddenError("unknown role")
}

// CanViewComplaint reports whether the complaint falls in the actor's
// visible set.
func (s *AuthorizationService) CanViewComplaint(ctx context.Context, actor models.Actor, complaint *models.Complaint) (bool, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleStudent:
		return complaint.UserID == actor.UserID, nil
	case models.RoleMentor:
		owner, err := s.users.GetUserByID(ctx, complaint.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("error resolving complaint owner: %w", err)
		}
		return owner.MentorID != nil && *owner.MentorID == actor.UserID, nil
	case models.RoleWarden:
		warden, err := s.users.GetUserByID(ctx, actor.UserID)
		if err != nil {
			return false, fmt.Errorf("error resolving warden hostel: %w", err)
		}
		return warden.HostelID != nil && *warden.HostelID == complaint.HostelID, nil
	}
	return false, nil
}

// ValidateView validates that the actor may see the complaint. A complaint
// outside the visible set reads as not found rather than forbidden, so the
// response does not leak its existence.
func (s *AuthorizationService) ValidateView(ctx context.Context, actor models.Actor, complaint *models.Complaint) error {
	canView, err := s.CanViewComplaint(ctx, actor, complaint)
	if err != nil {
		return err
	}
	if !canView {
		return apperrors.ErrComplaintNotFound
	}
	return nil
}

// ValidateTransition validates that the actor may change the complaint's
// status: wardens only, and only within their own hostel.
func (s *AuthorizationService) ValidateTransition(ctx context.Context, actor models.Actor, complaint *models.Complaint) error {
	if actor.Role != models.RoleWarden {
		return apperrors.NewForbiddenError("only wardens can change complaint status")
	}

	warden, err := s.users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("error resolving warden hostel: %w", err)
	}
	if warden.HostelID == nil || *warden.HostelID != complaint.HostelID {
		logger.Warn().Int64("wardenID", actor.UserID).Int64("complaintID", complaint.ID).
			Msg("Warden attempted to update a complaint outside their hostel")
		return apperrors.NewForbiddenError("complaint belongs to another hostel")
	}

	return nil
}

// ValidateTriage validates that the actor may set the urgency flag and
// mentor comment: mentors only, and only for their own mentees.
func (s *AuthorizationService) ValidateTriage(ctx context.Context, actor models.Actor, complaint *models.Complaint) error {
	if actor.Role != models.RoleMentor {
		return apperrors.NewForbiddenError("only mentors can triage complaints")
	}

	owner, err := s.users.GetUserByID(ctx, complaint.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewForbiddenError("complaint owner is not your mentee")
		}
		return fmt.Errorf("error resolving complaint owner: %w", err)
	}
	if owner.MentorID == nil || *owner.MentorID != actor.UserID {
		return apperrors.NewForbiddenError("complaint owner is not your mentee")
	}

	return nil
}

// ValidateDelete validates that the actor may delete a complaint. Deletion is
// the admin's only complaint mutation; no other role may delete.
func (s *AuthorizationService) ValidateDelete(actor models.Actor) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("only the admin can delete complaints")
	}
	return nil
}

// ValidateAdmin validates that the actor is the admin. Directory mutations
// (users, hostels) are admin-only.
func (s *AuthorizationService) ValidateAdmin(actor models.Actor) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("admin access required")
	}
	return nil
}
