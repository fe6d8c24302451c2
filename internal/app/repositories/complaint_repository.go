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
	"github.com/univoice/backend/internal/pkg/logger"
)

// complaintColumns is the column set scanned into a models.Complaint.
var complaintColumns = []string{
	"id", "heading", "description", "category", "status", "is_urgent", "is_abusive",
	"mentor_comment", "warden_comment", "created_at", "resolved_at", "user_id", "hostel_id",
}

// ComplaintFilter narrows a complaint listing. Nil fields are ignored. The
// visibility resolver builds one per actor; the repository applies it
// verbatim.
type ComplaintFilter struct {
	UserID   *int64 // owning student
	HostelID *int64 // hostel snapshot
	MentorID *int64 // mentor of the owning student
	Status   *models.ComplaintStatus
	// UrgentFirst orders the warden queue: urgent open complaints ahead of
	// everything else, newest first within each half. Without it complaints
	// come back in insertion order.
	UrgentFirst bool
}

// ComplaintRepository handles complaint database operations
type ComplaintRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(db *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	c := &models.Complaint{}
	err := row.Scan(&c.ID, &c.Heading, &c.Description, &c.Category, &c.Status, &c.IsUrgent,
		&c.IsAbusive, &c.MentorComment, &c.WardenComment, &c.CreatedAt, &c.ResolvedAt,
		&c.UserID, &c.HostelID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateComplaint inserts a new complaint and fills in its id and creation
// timestamp. Status, abuse flag and hostel snapshot are set by the caller.
func (r *ComplaintRepository) CreateComplaint(ctx context.Context, complaint *models.Complaint) (int64, error) {
	sql, args, err := r.sb.Insert("complaints").
		Columns("heading", "description", "category", "status", "is_urgent", "is_abusive", "user_id", "hostel_id").
		Values(complaint.Heading, complaint.Description, complaint.Category, complaint.Status,
			complaint.IsUrgent, complaint.IsAbusive, complaint.UserID, complaint.HostelID).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create complaint SQL")
		return 0, fmt.Errorf("failed to build create complaint query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&complaint.ID, &complaint.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", complaint.UserID).Msg("Error executing create complaint query")
		return 0, fmt.Errorf("error creating complaint: %w", err)
	}

	return complaint.ID, nil
}

// GetComplaintByID retrieves a complaint by ID
func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error) {
	sql, args, err := r.sb.Select(complaintColumns...).
		From("complaints").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get complaint by ID SQL")
		return nil, fmt.Errorf("failed to build get complaint query: %w", err)
	}

	complaint, err := scanComplaint(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrComplaintNotFound
		}
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error scanning complaint row")
		return nil, fmt.Errorf("error getting complaint by ID: %w", err)
	}

	return complaint, nil
}

// ListComplaints retrieves complaints matching the filter
func (r *ComplaintRepository) ListComplaints(ctx context.Context, filter ComplaintFilter) ([]*models.Complaint, error) {
	query := r.sb.Select(complaintColumns...).From("complaints")

	if filter.UserID != nil {
		query = query.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.HostelID != nil {
		query = query.Where(squirrel.Eq{"hostel_id": *filter.HostelID})
	}
	if filter.MentorID != nil {
		query = query.Where(squirrel.Expr("user_id IN (SELECT id FROM users WHERE mentor_id = ?)", *filter.MentorID))
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.UrgentFirst {
		query = query.OrderBy(
			"CASE WHEN is_urgent AND status IN ('PENDING', 'IN_PROGRESS') THEN 0 ELSE 1 END",
			"created_at DESC", "id DESC")
	} else {
		query = query.OrderBy("created_at ASC", "id ASC")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list complaints SQL")
		return nil, fmt.Errorf("failed to build list complaints query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list complaints query")
		return nil, fmt.Errorf("error querying complaints: %w", err)
	}
	defer rows.Close()

	complaints := []*models.Complaint{}
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning complaint row during list")
			return nil, fmt.Errorf("error scanning complaint row: %w", err)
		}
		complaints = append(complaints, complaint)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating complaint rows")
		return nil, fmt.Errorf("error iterating complaint rows: %w", err)
	}

	return complaints, nil
}

// UpdateComplaint shallow-merges the supplied fields into an existing
// complaint and returns the updated record. Nil fields are left untouched;
// an empty update is a no-op that returns the current record.
func (r *ComplaintRepository) UpdateComplaint(ctx context.Context, id int64, update *models.ComplaintUpdate) (*models.Complaint, error) {
	if update.IsEmpty() {
		return r.GetComplaintByID(ctx, id)
	}

	query := r.sb.Update("complaints").Where(squirrel.Eq{"id": id})

	if update.Status != nil {
		query = query.Set("status", *update.Status)
	}
	if update.IsUrgent != nil {
		query = query.Set("is_urgent", *update.IsUrgent)
	}
	if update.MentorComment != nil {
		query = query.Set("mentor_comment", *update.MentorComment)
	}
	if update.WardenComment != nil {
		query = query.Set("warden_comment", *update.WardenComment)
	}
	if update.ClearResolvedAt {
		query = query.Set("resolved_at", nil)
	} else if update.ResolvedAt != nil {
		query = query.Set("resolved_at", *update.ResolvedAt)
	}

	sql, args, err := query.Suffix("RETURNING " + joinColumns(complaintColumns)).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update complaint SQL")
		return nil, fmt.Errorf("failed to build update complaint query: %w", err)
	}

	complaint, err := scanComplaint(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrComplaintNotFound
		}
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error executing update complaint query")
		return nil, fmt.Errorf("error updating complaint: %w", err)
	}

	return complaint, nil
}

// DeleteComplaint deletes a complaint by ID
func (r *ComplaintRepository) DeleteComplaint(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("complaints").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete complaint SQL")
		return fmt.Errorf("failed to build delete complaint query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error executing delete complaint query")
		return fmt.Errorf("error deleting complaint: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrComplaintNotFound
	}

	return nil
}

// CountComplaintsByStatus returns per-status complaint counts for a hostel,
// used by the admin complaints manager. Statuses with no complaints are
// absent from the map.
func (r *ComplaintRepository) CountComplaintsByStatus(ctx context.Context, hostelID int64) (map[models.ComplaintStatus]int64, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").
		From("complaints").
		Where(squirrel.Eq{"hostel_id": hostelID}).
		GroupBy("status").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building count complaints SQL")
		return nil, fmt.Errorf("failed to build count complaints query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hostelID", hostelID).Msg("Error executing count complaints query")
		return nil, fmt.Errorf("error counting complaints: %w", err)
	}
	defer rows.Close()

	counts := map[models.ComplaintStatus]int64{}
	for rows.Next() {
		var status models.ComplaintStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			logger.Error().Err(err).Msg("Error scanning complaint count row")
			return nil, fmt.Errorf("error scanning complaint count row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating complaint count rows")
		return nil, fmt.Errorf("error iterating complaint count rows: %w", err)
	}

	return counts, nil
}
