package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/univoice/backend/docs" // Import generated swagger docs
	appAuth "github.com/univoice/backend/internal/app/auth"
	appControllers "github.com/univoice/backend/internal/app/controllers"
	appMigrations "github.com/univoice/backend/internal/app/migrations"
	appRepos "github.com/univoice/backend/internal/app/repositories"
	appRoutes "github.com/univoice/backend/internal/app/routes"
	appServices "github.com/univoice/backend/internal/app/services"
	"github.com/univoice/backend/internal/config"
	"github.com/univoice/backend/internal/db"
	appMiddleware "github.com/univoice/backend/internal/middleware"
	pkgAuth "github.com/univoice/backend/internal/pkg/auth"
	"github.com/univoice/backend/internal/pkg/helpers"
	"github.com/univoice/backend/internal/pkg/logger"
	"github.com/univoice/backend/internal/pkg/moderation"
	"github.com/univoice/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	ComplaintService    appServices.ComplaintService
	UserService         appServices.UserService
	HostelService       appServices.HostelService
	AuthController      *appControllers.AuthController
	ComplaintController *appControllers.ComplaintController
	UserController      *appControllers.UserController
	HostelController    *appControllers.HostelController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	AuthzService        *appAuth.AuthorizationService
	ModerationFilter    *moderation.Filter
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)

	if len(cfg.Moderation.Blocklist) > 0 {
		deps.ModerationFilter = moderation.NewFilter(cfg.Moderation.Blocklist)
	} else {
		deps.ModerationFilter = moderation.NewDefaultFilter()
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.HostelRepository,
		deps.JWTService,
		lgr,
	)

	deps.ComplaintService = appServices.NewComplaintService(
		deps.Repos.ComplaintRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		deps.ModerationFilter,
		lgr,
	)

	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.HostelRepository,
		deps.Repos.ComplaintRepository,
		deps.Repos.TokenRepository,
		deps.AuthzService,
		lgr,
	)

	deps.HostelService = appServices.NewHostelService(deps.Repos.HostelRepository, deps.AuthzService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ComplaintController = appControllers.NewComplaintController(deps.ComplaintService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.HostelController = appControllers.NewHostelController(deps.HostelService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ComplaintController,
		deps.UserController,
		deps.HostelController,
		deps.AuthMiddleware,
	)

	return router
}
