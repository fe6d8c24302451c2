package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/univoice/backend/internal/app/auth"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/app/repositories"
	"github.com/univoice/backend/internal/pkg/apperrors"
	"github.com/univoice/backend/internal/pkg/auth"
)

// UserService defines the interface for the admin's account management
// surface. Every operation requires the acting user to be an admin.
type UserService interface {
	CreateUser(ctx context.Context, actor models.Actor, req *dto.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, actor models.Actor, id int64) (*models.User, error)
	GetStudentProfile(ctx context.Context, actor models.Actor, id int64) (*dto.StudentProfile, error)
	ListUsers(ctx context.Context, actor models.Actor, filter repositories.UserFilter) ([]*models.User, error)
	UpdateUser(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actor models.Actor, id int64) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	users      UserStore
	hostels    HostelStore
	complaints ComplaintStore
	tokens     TokenStore
	authz      *appauth.AuthorizationService
	logger     zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	users UserStore,
	hostels HostelStore,
	complaints ComplaintStore,
	tokens TokenStore,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		users:      users,
		hostels:    hostels,
		complaints: complaints,
		tokens:     tokens,
		authz:      authz,
		logger:     logger,
	}
}

// CreateUser creates a warden, mentor or student account. Assignment fields
// are checked against the role: only students carry a mentor and a room,
// only students and wardens carry a hostel.
func (s *userServiceImpl) CreateUser(ctx context.Context, actor models.Actor, req *dto.CreateUserRequest) (*models.User, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}

	role := models.RoleType(strings.ToUpper(req.RoleType))
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role type")
	}
	if role == models.RoleAdmin {
		return nil, apperrors.NewValidationError("admin accounts cannot be created through this endpoint")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}
	if role != models.RoleStudent && (req.MentorID != nil || req.RoomNumber != nil) {
		return nil, apperrors.NewValidationError("only students carry a mentor and a room number")
	}
	if role == models.RoleMentor && req.HostelID != nil {
		return nil, apperrors.NewValidationError("mentors are not assigned to a hostel")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if req.HostelID != nil {
		if _, err := s.hostels.GetHostelByID(ctx, *req.HostelID); err != nil {
			return nil, err
		}
	}
	if req.MentorID != nil {
		mentor, err := s.users.GetUserByID(ctx, *req.MentorID)
		if err != nil {
			return nil, err
		}
		if mentor.RoleType != models.RoleMentor {
			return nil, apperrors.NewValidationError("assigned mentor must have the MENTOR role")
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:      email,
		Password:   hashed,
		Name:       req.Name,
		RoleType:   role,
		HostelID:   req.HostelID,
		MentorID:   req.MentorID,
		RoomNumber: req.RoomNumber,
	}

	if _, err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User account created")
	return user, nil
}

// GetUser retrieves one user account
func (s *userServiceImpl) GetUser(ctx context.Context, actor models.Actor, id int64) (*models.User, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid user ID")
	}
	return s.users.GetUserByID(ctx, id)
}

// GetStudentProfile retrieves one student together with their complaint
// history, flagged submissions split out for review.
func (s *userServiceImpl) GetStudentProfile(ctx context.Context, actor models.Actor, id int64) (*dto.StudentProfile, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}

	student, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student.RoleType != models.RoleStudent {
		return nil, apperrors.NewValidationError("user is not a student")
	}

	complaints, err := s.complaints.ListComplaints(ctx, repositories.ComplaintFilter{UserID: &id})
	if err != nil {
		return nil, fmt.Errorf("error listing student complaints: %w", err)
	}

	profile := &dto.StudentProfile{
		Student: student,
		Flagged: []*models.Complaint{},
		History: []*models.Complaint{},
	}
	for _, c := range complaints {
		if c.Status == models.StatusFlagged {
			profile.Flagged = append(profile.Flagged, c)
		} else {
			profile.History = append(profile.History, c)
		}
	}

	return profile, nil
}

// ListUsers retrieves user accounts matching the filter
func (s *userServiceImpl) ListUsers(ctx context.Context, actor models.Actor, filter repositories.UserFilter) ([]*models.User, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx, filter)
}

// UpdateUser shallow-merges the supplied fields into an existing account.
// Reassigning a student's hostel does not touch their existing complaints;
// those keep the hostel recorded at filing time.
func (s *userServiceImpl) UpdateUser(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid user ID")
	}

	if req.HostelID != nil && *req.HostelID > 0 {
		if _, err := s.hostels.GetHostelByID(ctx, *req.HostelID); err != nil {
			return nil, err
		}
	}
	if req.MentorID != nil && *req.MentorID > 0 {
		mentor, err := s.users.GetUserByID(ctx, *req.MentorID)
		if err != nil {
			return nil, err
		}
		if mentor.RoleType != models.RoleMentor {
			return nil, apperrors.NewValidationError("assigned mentor must have the MENTOR role")
		}
	}

	update := &models.UserUpdate{
		Name:       req.Name,
		Email:      req.Email,
		HostelID:   req.HostelID,
		MentorID:   req.MentorID,
		RoomNumber: req.RoomNumber,
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &email
	}

	return s.users.UpdateUser(ctx, id, update)
}

// DeleteUser removes an account and revokes its active sessions. The
// account's complaints are removed with it.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actor models.Actor, id int64) error {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("invalid user ID")
	}
	if id == actor.UserID {
		return apperrors.NewValidationError("admins cannot delete their own account")
	}

	if err := s.tokens.RevokeAllUserTokens(ctx, id); err != nil {
		return err
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("User account deleted")
	return nil
}
