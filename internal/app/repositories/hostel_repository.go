package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/pkg/apperrors"
	"github.com/univoice/backend/internal/pkg/dberrors"
	"github.com/univoice/backend/internal/pkg/logger"
)

// HostelRepository handles hostel database operations
type HostelRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHostelRepository creates a new HostelRepository
func NewHostelRepository(db *pgxpool.Pool) *HostelRepository {
	return &HostelRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateHostel creates a new hostel and returns the assigned id
func (r *HostelRepository) CreateHostel(ctx context.Context, hostel *models.Hostel) (int64, error) {
	sql, args, err := r.sb.Insert("hostels").
		Columns("name", "gender", "total_rooms").
		Values(hostel.Name, hostel.Gender, hostel.TotalRooms).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create hostel SQL")
		return 0, fmt.Errorf("failed to build create hostel query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrHostelAlreadyExists
		}
		logger.Error().Err(err).Str("name", hostel.Name).Msg("Error executing create hostel query")
		return 0, fmt.Errorf("error creating hostel: %w", err)
	}

	return id, nil
}

// GetHostelByID retrieves a hostel by ID
func (r *HostelRepository) GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error) {
	sql, args, err := r.sb.Select("id", "name", "gender", "total_rooms").
		From("hostels").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get hostel by ID SQL")
		return nil, fmt.Errorf("failed to build get hostel query: %w", err)
	}

	hostel := &models.Hostel{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&hostel.ID, &hostel.Name, &hostel.Gender, &hostel.TotalRooms)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHostelNotFound
		}
		logger.Error().Err(err).Int64("hostelID", id).Msg("Error scanning hostel row")
		return nil, fmt.Errorf("error getting hostel by ID: %w", err)
	}

	return hostel, nil
}

// GetAllHostels retrieves all hostels
func (r *HostelRepository) GetAllHostels(ctx context.Context) ([]*models.Hostel, error) {
	sql, args, err := r.sb.Select("id", "name", "gender", "total_rooms").
		From("hostels").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all hostels SQL")
		return nil, fmt.Errorf("failed to build get all hostels query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all hostels query")
		return nil, fmt.Errorf("error querying hostels: %w", err)
	}
	defer rows.Close()

	hostels := []*models.Hostel{}
	for rows.Next() {
		hostel := &models.Hostel{}
		if err := rows.Scan(&hostel.ID, &hostel.Name, &hostel.Gender, &hostel.TotalRooms); err != nil {
			logger.Error().Err(err).Msg("Error scanning hostel row during get all")
			return nil, fmt.Errorf("error scanning hostel row: %w", err)
		}
		hostels = append(hostels, hostel)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating hostel rows")
		return nil, fmt.Errorf("error iterating hostel rows: %w", err)
	}

	return hostels, nil
}

// DeleteHostel deletes a hostel by ID. The delete and the cascade that clears
// hostel_id on every user referencing it run in one transaction, so no user
// is ever left pointing at a missing hostel. Complaints keep their hostel_id
// snapshot; it is not a foreign key.
func (r *HostelRepository) DeleteHostel(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete hostel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	clearSQL, clearArgs, err := r.sb.Update("users").
		Set("hostel_id", nil).
		Where(squirrel.Eq{"hostel_id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building clear hostel assignments SQL")
		return fmt.Errorf("failed to build clear hostel assignments query: %w", err)
	}

	if _, err := tx.Exec(ctx, clearSQL, clearArgs...); err != nil {
		logger.Error().Err(err).Int64("hostelID", id).Msg("Error clearing hostel assignments")
		return fmt.Errorf("error clearing hostel assignments: %w", err)
	}

	deleteSQL, deleteArgs, err := r.sb.Delete("hostels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete hostel SQL")
		return fmt.Errorf("failed to build delete hostel query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		logger.Error().Err(err).Int64("hostelID", id).Msg("Error executing delete hostel query")
		return fmt.Errorf("error deleting hostel: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHostelNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete hostel transaction: %w", err)
	}

	return nil
}
