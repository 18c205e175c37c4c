package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/repository/common"
)

var (
	ErrHearingNotFound   = errors.New("hearing schedule not found")
	ErrHearingNotPending = errors.New("hearing is not pending")
)

type HearingRepository struct {
	db *sqlx.DB
}

func NewHearingRepository(db *sqlx.DB) *HearingRepository {
	return &HearingRepository{db: db}
}

func (r *HearingRepository) Create(ctx context.Context, h *models.HearingSchedule) error {
	query := `
		INSERT INTO hearing_schedules (complaint_id, scheduled_date, scheduled_time, location, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		h.ComplaintID, h.ScheduledDate, h.ScheduledTime, h.Location, h.Notes, h.Status).
		Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return fmt.Errorf("hearing repository: create %w", err)
	}
	return nil
}

func (r *HearingRepository) GetByID(ctx context.Context, id int64) (*models.HearingSchedule, error) {
	return common.GetByID[models.HearingSchedule](ctx, r.db, "hearing_schedules", id, ErrHearingNotFound)
}

// CountByComplaint returns the number of scheduling attempts for a complaint.
// The count is derived, never stored.
func (r *HearingRepository) CountByComplaint(ctx context.Context, complaintID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM hearing_schedules WHERE complaint_id = $1`, complaintID)
	if err != nil {
		return 0, fmt.Errorf("hearing repository: count by complaint %w", err)
	}
	return count, nil
}

// UpdateStatus moves a pending hearing to APPROVED or CANCELLED with a
// conditional update.
func (r *HearingRepository) UpdateStatus(ctx context.Context, id int64, to valueobject.HearingStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE hearing_schedules SET status = $2
		WHERE id = $1 AND status = $3
	`, id, to, valueobject.HearingStatusPending)
	if err != nil {
		return fmt.Errorf("hearing repository: update status %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("hearing repository: rows affected %w", err)
	}
	if affected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrHearingNotPending
	}
	return nil
}

// Resolve writes the resolution onto the hearing and propagates the status to
// the parent complaint in the same transaction. A re-invocation overwrites the
// prior resolution; only the attempt rows keep history. Returns the hearing's
// scheduled date so the caller knows which report year changed.
func (r *HearingRepository) Resolve(ctx context.Context, id int64,
	resType valueobject.ResolutionType, resMethod *valueobject.ResolutionMethod,
	resNotes *string, resolvedAt *time.Time,
	hearingStatus valueobject.HearingStatus, complaintStatus valueobject.ComplaintStatus) (time.Time, error) {

	var scheduledDate time.Time

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var row struct {
			ComplaintID   int64     `db:"complaint_id"`
			ScheduledDate time.Time `db:"scheduled_date"`
		}
		err := tx.GetContext(ctx, &row,
			`SELECT complaint_id, scheduled_date FROM hearing_schedules WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHearingNotFound
		}
		if err != nil {
			return fmt.Errorf("hearing repository: lock row %w", err)
		}
		complaintID := row.ComplaintID
		scheduledDate = row.ScheduledDate

		_, err = tx.ExecContext(ctx, `
			UPDATE hearing_schedules
			SET status = $2, resolution_type = $3, resolution_method = $4, resolution_notes = $5, resolved_at = $6
			WHERE id = $1
		`, id, hearingStatus, resType, resMethod, resNotes, resolvedAt)
		if err != nil {
			return fmt.Errorf("hearing repository: resolve hearing %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE complaints SET status = $2, updated_at = NOW() WHERE id = $1
		`, complaintID, complaintStatus)
		if err != nil {
			return fmt.Errorf("hearing repository: propagate status %w", err)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return scheduledDate, nil
}

// ListForYear returns the hearing/complaint join the compliance report runs
// over, as one consistent snapshot query.
func (r *HearingRepository) ListForYear(ctx context.Context, year int) ([]models.HearingReportRow, error) {
	var rows []models.HearingReportRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT h.scheduled_date, c.complaint_type, h.resolution_type, h.resolution_method
		FROM hearing_schedules h
		JOIN complaints c ON c.id = h.complaint_id
		WHERE h.scheduled_date IS NOT NULL
		  AND EXTRACT(YEAR FROM h.scheduled_date) = $1
		ORDER BY h.scheduled_date
	`, year)
	if err != nil {
		return nil, fmt.Errorf("hearing repository: list for year %w", err)
	}
	return rows, nil
}
