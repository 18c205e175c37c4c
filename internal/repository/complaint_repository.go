package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/repository/common"
)

// Repository-level errors.
var (
	ErrComplaintNotFound   = errors.New("complaint not found")
	ErrComplaintNotPending = errors.New("complaint is not pending")
	ErrTrackingNumberTaken = errors.New("tracking number already taken")
)

const pqUniqueViolation = "23505"

// ComplaintRepository owns the complaints table and the year-scoped case
// counter. Nothing outside Accept writes the case_number column.
type ComplaintRepository struct {
	db *sqlx.DB
}

func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create inserts a new pending complaint. A duplicate tracking number is
// reported as ErrTrackingNumberTaken so the caller can regenerate and retry.
func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (tracking_number, resident_id, title, category, complaint_type, sitio, respondent, description, witnesses, evidence_path, evidence_mime, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.TrackingNumber, c.ResidentID, c.Title, c.Category, c.ComplaintType, c.Sitio,
		c.Respondent, c.Description, c.Witnesses, c.EvidencePath, c.EvidenceMime, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrTrackingNumberTaken
		}
		return fmt.Errorf("complaint repository: create %w", err)
	}
	return nil
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id int64) (*models.Complaint, error) {
	return common.GetByID[models.Complaint](ctx, r.db, "complaints", id, ErrComplaintNotFound)
}

func (r *ComplaintRepository) GetByTrackingNumber(ctx context.Context, tracking string) (*models.Complaint, error) {
	return common.GetByField[models.Complaint](ctx, r.db, "complaints", "tracking_number", tracking, ErrComplaintNotFound)
}

// Accept flips a pending complaint to IN_PROGRESS and assigns the next case
// number for the given year, all in one transaction. The complaint row is
// locked before the status re-check so a racing accept/decline cannot slip
// between the read and the write. If anything fails the counter increment
// rolls back with the rest, so numbers are never burned.
func (r *ComplaintRepository) Accept(ctx context.Context, id int64, year int) (string, error) {
	var caseNumber string

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var status valueobject.ComplaintStatus
		err := tx.GetContext(ctx, &status,
			`SELECT status FROM complaints WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrComplaintNotFound
		}
		if err != nil {
			return fmt.Errorf("complaint repository: lock row %w", err)
		}
		if status != valueobject.ComplaintStatusPending {
			return ErrComplaintNotPending
		}

		seq, err := nextCaseSequence(ctx, tx, year)
		if err != nil {
			return err
		}
		caseNumber = models.FormatCaseNumber(year, seq)

		res, err := tx.ExecContext(ctx, `
			UPDATE complaints
			SET status = $2, case_number = $3, updated_at = NOW()
			WHERE id = $1 AND status = $4
		`, id, valueobject.ComplaintStatusInProgress, caseNumber, valueobject.ComplaintStatusPending)
		if err != nil {
			return fmt.Errorf("complaint repository: accept %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("complaint repository: rows affected %w", err)
		}
		if affected == 0 {
			return ErrComplaintNotPending
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return caseNumber, nil
}

// nextCaseSequence bumps the per-year counter row and returns the new value.
// The upsert takes a row lock, so concurrent callers serialize on the year.
func nextCaseSequence(ctx context.Context, tx *sqlx.Tx, year int) (int, error) {
	var seq int
	err := tx.GetContext(ctx, &seq, `
		INSERT INTO case_counters (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = case_counters.last_value + 1
		RETURNING last_value
	`, year)
	if err != nil {
		return 0, fmt.Errorf("complaint repository: next case sequence %w", err)
	}
	return seq, nil
}

// Decline cancels a pending complaint with a single conditional update.
func (r *ComplaintRepository) Decline(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE complaints SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`, id, valueobject.ComplaintStatusCancelled, valueobject.ComplaintStatusPending)
	if err != nil {
		return fmt.Errorf("complaint repository: decline %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complaint repository: rows affected %w", err)
	}
	if affected == 0 {
		// Zero rows means either a lost race or an unknown id.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrComplaintNotPending
	}
	return nil
}
