package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/app/repositories"
	"github.com/univoice/backend/internal/pkg/apperrors"
	"github.com/univoice/backend/internal/pkg/auth"
)

// UserStore is the slice of the user repository the auth and user services
// need.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context, filter repositories.UserFilter) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// TokenStore is the slice of the token repository the auth service needs.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUserID(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// HostelStore is the slice of the hostel repository the services need.
type HostelStore interface {
	CreateHostel(ctx context.Context, hostel *models.Hostel) (int64, error)
	GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error)
	GetAllHostels(ctx context.Context) ([]*models.Hostel, error)
	DeleteHostel(ctx context.Context, id int64) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users   UserStore
	tokens  TokenStore
	hostels HostelStore
	jwt     *auth.JWTService
	logger  zerolog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(users UserStore, tokens TokenStore, hostels HostelStore, jwt *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:   users,
		tokens:  tokens,
		hostels: hostels,
		jwt:     jwt,
		logger:  logger,
	}
}

// Login authenticates a user by email and password and issues a token pair.
// Unknown email and wrong password both come back as invalid credentials so
// the response never reveals which part failed.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user for login: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", email).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair. The old
// token is revoked so each refresh token is single use.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokens.GetTokenUserID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user for refresh: %w", err)
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking used refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.NewValidationError("refresh token is required")
	}
	return s.tokens.RevokeToken(ctx, refreshToken)
}

// GetProfile returns the authenticated user's profile, with the hostel name
// resolved when the user has one.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.UserProfile{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		RoleType:   string(user.RoleType),
		HostelID:   user.HostelID,
		MentorID:   user.MentorID,
		RoomNumber: user.RoomNumber,
	}

	if user.HostelID != nil {
		hostel, err := s.hostels.GetHostelByID(ctx, *user.HostelID)
		if err == nil {
			profile.HostelName = &hostel.Name
		}
	}

	return profile, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token pair: %w", err)
	}

	if err := s.tokens.CreateToken(ctx, refreshToken, user.ID, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error persisting refresh token: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("Token pair issued")

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
