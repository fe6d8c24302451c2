package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/univoice/backend/internal/app/models"
	appRepos "github.com/univoice/backend/internal/app/repositories"
	"github.com/univoice/backend/internal/pkg/apperrors"
	pkgAuth "github.com/univoice/backend/internal/pkg/auth"
)

// defaultHostels are created on first start so the admin has something to
// assign wardens and students to.
var defaultHostels = []appModels.Hostel{
	{Name: "Kings Palace-1", Gender: appModels.GenderBoys, TotalRooms: 50},
	{Name: "Queens Castle-2", Gender: appModels.GenderGirls, TotalRooms: 50},
	{Name: "Royal Residency-3", Gender: appModels.GenderBoys, TotalRooms: 50},
}

// CreateDefaultData creates the default admin account and sample hostels if
// they don't exist. Errors are collected rather than aborting so a partially
// seeded database still comes up.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	hostelRepo := appRepos.NewHostelRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account, hostels)...")
	var finalErr error

	for i := range defaultHostels {
		hostel := defaultHostels[i]
		if _, err := hostelRepo.CreateHostel(ctx, &hostel); err != nil {
			if errors.Is(err, apperrors.ErrHostelAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("hostel", hostel.Name).Msg("Error creating default hostel")
			finalErr = errors.Join(finalErr, err)
		}
	}

	exists, err := userRepo.EmailExists(ctx, "admin@univoice.edu")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user...")
	hashedPassword, err := pkgAuth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:    "admin@univoice.edu",
		Password: hashedPassword,
		Name:     "System Administrator",
		RoleType: appModels.RoleAdmin,
	}

	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
	return finalErr
}
