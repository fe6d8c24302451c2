package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/univoice/backend/internal/app/auth"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/pkg/apperrors"
)

// HostelService defines the interface for hostel management. Listing is open
// to any authenticated user; mutation is admin only.
type HostelService interface {
	CreateHostel(ctx context.Context, actor models.Actor, req *dto.CreateHostelRequest) (*models.Hostel, error)
	GetHostel(ctx context.Context, id int64) (*models.Hostel, error)
	ListHostels(ctx context.Context) ([]*models.Hostel, error)
	DeleteHostel(ctx context.Context, actor models.Actor, id int64) error
}

// hostelServiceImpl implements the HostelService interface
type hostelServiceImpl struct {
	hostels HostelStore
	authz   *appauth.AuthorizationService
	logger  zerolog.Logger
}

// NewHostelService creates a new hostel service instance
func NewHostelService(hostels HostelStore, authz *appauth.AuthorizationService, logger zerolog.Logger) HostelService {
	return &hostelServiceImpl{
		hostels: hostels,
		authz:   authz,
		logger:  logger,
	}
}

// CreateHostel creates a new hostel
func (s *hostelServiceImpl) CreateHostel(ctx context.Context, actor models.Actor, req *dto.CreateHostelRequest) (*models.Hostel, error) {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("hostel name cannot be empty")
	}
	gender := models.Gender(strings.ToUpper(req.Gender))
	if !gender.IsValid() {
		return nil, apperrors.NewValidationError("hostel gender must be BOYS or GIRLS")
	}
	if req.TotalRooms < 1 {
		return nil, apperrors.NewValidationError("hostel must have at least one room")
	}

	hostel := &models.Hostel{
		Name:       strings.TrimSpace(req.Name),
		Gender:     gender,
		TotalRooms: req.TotalRooms,
	}

	if _, err := s.hostels.CreateHostel(ctx, hostel); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("hostelID", hostel.ID).Str("name", hostel.Name).Msg("Hostel created")
	return hostel, nil
}

// GetHostel retrieves a hostel by ID
func (s *hostelServiceImpl) GetHostel(ctx context.Context, id int64) (*models.Hostel, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid hostel ID")
	}
	return s.hostels.GetHostelByID(ctx, id)
}

// ListHostels retrieves all hostels
func (s *hostelServiceImpl) ListHostels(ctx context.Context) ([]*models.Hostel, error) {
	return s.hostels.GetAllHostels(ctx)
}

// DeleteHostel removes a hostel. Residents and wardens assigned to it are
// unassigned rather than deleted; complaints keep the hostel they were filed
// against.
func (s *hostelServiceImpl) DeleteHostel(ctx context.Context, actor models.Actor, id int64) error {
	if err := s.authz.ValidateAdmin(actor); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("invalid hostel ID")
	}

	if err := s.hostels.DeleteHostel(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("hostelID", id).Msg("Hostel deleted")
	return nil
}
