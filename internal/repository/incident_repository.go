package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/repository/common"
)

var (
	ErrIncidentNotFound    = errors.New("incident not found")
	ErrIncidentNotPending  = errors.New("incident is not pending")
	ErrIncidentTransferred = errors.New("incident already transferred")
)

type IncidentRepository struct {
	db *sqlx.DB
}

func NewIncidentRepository(db *sqlx.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(ctx context.Context, in *models.Incident) error {
	query := `
		INSERT INTO incidents (resident_id, title, category, incident_type, sitio, respondent, description, witnesses, evidence_path, evidence_mime, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		in.ResidentID, in.Title, in.Category, in.IncidentType, in.Sitio,
		in.Respondent, in.Description, in.Witnesses, in.EvidencePath, in.EvidenceMime, in.Status).
		Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return fmt.Errorf("incident repository: create %w", err)
	}
	return nil
}

func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	return common.GetByID[models.Incident](ctx, r.db, "incidents", id, ErrIncidentNotFound)
}

// Resolve closes a pending incident. Zero affected rows is a lost race or an
// unknown id, never a fatal condition.
func (r *IncidentRepository) Resolve(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE incidents SET status = $2, resolved_at = $3
		WHERE id = $1 AND status = $4
	`, id, valueobject.IncidentStatusResolved, at, valueobject.IncidentStatusPending)
	if err != nil {
		return fmt.Errorf("incident repository: resolve %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("incident repository: rows affected %w", err)
	}
	if affected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrIncidentNotPending
	}
	return nil
}

// MarkTransferred flips the incident after its complaint image has been
// created. Only a pending incident may transfer; RESOLVED is terminal.
func (r *IncidentRepository) MarkTransferred(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE incidents SET status = $2, transferred_at = $3
		WHERE id = $1 AND status = $4
	`, id, valueobject.IncidentStatusTransferred, at, valueobject.IncidentStatusPending)
	if err != nil {
		return fmt.Errorf("incident repository: mark transferred %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("incident repository: rows affected %w", err)
	}
	if affected == 0 {
		incident, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		if incident.Status == valueobject.IncidentStatusTransferred {
			return ErrIncidentTransferred
		}
		return ErrIncidentNotPending
	}
	return nil
}
