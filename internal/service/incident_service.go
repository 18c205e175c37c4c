package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/logger"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
	"github.com/rmagbanua/barangay-backend/internal/repository"
)

type IncidentRepository interface {
	Create(ctx context.Context, in *models.Incident) error
	GetByID(ctx context.Context, id int64) (*models.Incident, error)
	Resolve(ctx context.Context, id int64, at time.Time) error
	MarkTransferred(ctx context.Context, id int64, at time.Time) error
}

// ComplaintIntake creates the complaint image of a transferred incident.
type ComplaintIntake interface {
	CreateWithTracking(ctx context.Context, c *models.Complaint) error
}

type IncidentService struct {
	repo       IncidentRepository
	complaints ComplaintIntake
	clock      Clock
}

func NewIncidentService(repo IncidentRepository, complaints ComplaintIntake, clock Clock) *IncidentService {
	return &IncidentService{repo: repo, complaints: complaints, clock: clock}
}

// SubmitIncidentInput carries the incident report form fields.
type SubmitIncidentInput struct {
	ResidentID   *uuid.UUID
	Title        string
	Category     string
	IncidentType *string
	Sitio        *string
	Respondent   *string
	Description  string
	Witnesses    *string
	EvidencePath *string
	EvidenceMime *string
}

func (s *IncidentService) Submit(ctx context.Context, in SubmitIncidentInput) (*models.Incident, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "category is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "description is required")
	}

	incident := &models.Incident{
		ResidentID:   in.ResidentID,
		Title:        in.Title,
		Category:     in.Category,
		IncidentType: in.IncidentType,
		Sitio:        in.Sitio,
		Respondent:   in.Respondent,
		Description:  in.Description,
		Witnesses:    in.Witnesses,
		EvidencePath: in.EvidencePath,
		EvidenceMime: in.EvidenceMime,
		Status:       valueobject.IncidentStatusPending,
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to create incident")
	}
	return incident, nil
}

func (s *IncidentService) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateIncidentErr(err)
	}
	return incident, nil
}

// Resolve closes a pending incident in place.
func (s *IncidentService) Resolve(ctx context.Context, id int64) error {
	if err := s.repo.Resolve(ctx, id, s.clock.Now()); err != nil {
		return translateIncidentErr(err)
	}
	return nil
}

// Transfer escalates an incident into a pending complaint. The complaint is
// created first and only then is the incident flipped; the two writes are
// ordered, not transactional. A crash between them leaves an extra complaint
// with no transferred-incident marker, which is accepted rather than guarded
// by two-phase commit.
func (s *IncidentService) Transfer(ctx context.Context, id int64) (*models.Complaint, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateIncidentErr(err)
	}
	if incident.Status == valueobject.IncidentStatusTransferred {
		return nil, apperror.ErrAlreadyTransferred
	}
	if !incident.Status.CanTransitionTo(valueobject.IncidentStatusTransferred) {
		return nil, apperror.ErrIncidentNotPending
	}
	if incident.ResidentID == nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "incident has no reporting resident and cannot be transferred")
	}

	complaint := &models.Complaint{
		ResidentID:    incident.ResidentID,
		Title:         incident.Title,
		Category:      incident.Category,
		ComplaintType: incident.IncidentType,
		Sitio:         incident.Sitio,
		Respondent:    incident.Respondent,
		Description:   incident.Description,
		Witnesses:     incident.Witnesses,
		EvidencePath:  incident.EvidencePath,
		EvidenceMime:  incident.EvidenceMime,
		Status:        valueobject.ComplaintStatusPending,
	}
	if err := s.complaints.CreateWithTracking(ctx, complaint); err != nil {
		return nil, err
	}

	if err := s.repo.MarkTransferred(ctx, id, s.clock.Now()); err != nil {
		// The complaint already exists at this point. Surface the failure so
		// staff can reconcile the unlinked complaint manually.
		if logger.Log != nil {
			logger.Log.WithField("incident_id", id).
				WithField("complaint_id", complaint.ID).
				WithError(err).
				Warn("incident transfer left an unlinked complaint")
		}
		return nil, translateIncidentErr(err)
	}
	return complaint, nil
}

func translateIncidentErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrIncidentNotFound):
		return apperror.ErrIncidentNotFound
	case errors.Is(err, repository.ErrIncidentNotPending):
		return apperror.ErrIncidentNotPending
	case errors.Is(err, repository.ErrIncidentTransferred):
		return apperror.ErrAlreadyTransferred
	default:
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "incident operation failed")
	}
}
