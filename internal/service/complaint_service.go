package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
	"github.com/rmagbanua/barangay-backend/internal/repository"
)

// maxTrackingAttempts bounds the collision retry on tracking-number inserts.
const maxTrackingAttempts = 5

type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) error
	GetByID(ctx context.Context, id int64) (*models.Complaint, error)
	GetByTrackingNumber(ctx context.Context, tracking string) (*models.Complaint, error)
	Accept(ctx context.Context, id int64, year int) (string, error)
	Decline(ctx context.Context, id int64) error
}

type ComplaintService struct {
	repo     ComplaintRepository
	tracking *TrackingGenerator
	clock    Clock
}

func NewComplaintService(repo ComplaintRepository, tracking *TrackingGenerator, clock Clock) *ComplaintService {
	return &ComplaintService{repo: repo, tracking: tracking, clock: clock}
}

// SubmitComplaintInput carries the intake form fields.
type SubmitComplaintInput struct {
	ResidentID    *uuid.UUID
	Title         string
	Category      string
	ComplaintType *string
	Sitio         *string
	Respondent    *string
	Description   string
	Witnesses     *string
	EvidencePath  *string
	EvidenceMime  *string
}

// Submit files a new complaint with status PENDING and a fresh tracking
// number. No case number is assigned here.
func (s *ComplaintService) Submit(ctx context.Context, in SubmitComplaintInput) (*models.Complaint, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "category is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "description is required")
	}

	c := &models.Complaint{
		ResidentID:    in.ResidentID,
		Title:         in.Title,
		Category:      in.Category,
		ComplaintType: in.ComplaintType,
		Sitio:         in.Sitio,
		Respondent:    in.Respondent,
		Description:   in.Description,
		Witnesses:     in.Witnesses,
		EvidencePath:  in.EvidencePath,
		EvidenceMime:  in.EvidenceMime,
		Status:        valueobject.ComplaintStatusPending,
	}
	if err := s.CreateWithTracking(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateWithTracking inserts the complaint, regenerating the tracking number
// on a collision. The insert itself is the uniqueness check, so the retry is
// idempotent and bounded.
func (s *ComplaintService) CreateWithTracking(ctx context.Context, c *models.Complaint) error {
	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		tracking, err := s.tracking.Generate()
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeInternal, "failed to generate tracking number")
		}
		c.TrackingNumber = tracking

		err = s.repo.Create(ctx, c)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrTrackingNumberTaken) {
			continue
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to create complaint")
	}
	return apperror.New(apperror.ErrCodeInternal, "could not allocate a unique tracking number")
}

// StatusUpdate is the result of an accept or decline.
type StatusUpdate struct {
	Status     valueobject.ComplaintStatus `json:"status"`
	CaseNumber *string                     `json:"case_number,omitempty"`
}

// Accept moves a pending complaint to IN_PROGRESS and assigns its case
// number. A repeat accept is a conflict, never silently idempotent: the
// caller must learn it lost the race.
func (s *ComplaintService) Accept(ctx context.Context, id int64) (*StatusUpdate, error) {
	year := s.clock.Now().Year()
	caseNumber, err := s.repo.Accept(ctx, id, year)
	if err != nil {
		return nil, translateComplaintErr(err)
	}
	return &StatusUpdate{Status: valueobject.ComplaintStatusInProgress, CaseNumber: &caseNumber}, nil
}

// Decline cancels a pending complaint.
func (s *ComplaintService) Decline(ctx context.Context, id int64) (*StatusUpdate, error) {
	if err := s.repo.Decline(ctx, id); err != nil {
		return nil, translateComplaintErr(err)
	}
	return &StatusUpdate{Status: valueobject.ComplaintStatusCancelled}, nil
}

// UpdateStatus dispatches the staff triage action.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id int64, action string) (*StatusUpdate, error) {
	switch strings.ToUpper(action) {
	case "ACCEPT":
		return s.Accept(ctx, id)
	case "DECLINE":
		return s.Decline(ctx, id)
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "action must be ACCEPT or DECLINE")
	}
}

func (s *ComplaintService) GetByID(ctx context.Context, id int64) (*models.Complaint, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateComplaintErr(err)
	}
	return c, nil
}

// GetByTracking is the public pre-acceptance status lookup.
func (s *ComplaintService) GetByTracking(ctx context.Context, tracking string) (*models.Complaint, error) {
	c, err := s.repo.GetByTrackingNumber(ctx, tracking)
	if err != nil {
		return nil, translateComplaintErr(err)
	}
	return c, nil
}

func translateComplaintErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrComplaintNotFound):
		return apperror.ErrComplaintNotFound
	case errors.Is(err, repository.ErrComplaintNotPending):
		return apperror.ErrComplaintNotPending
	default:
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "complaint operation failed")
	}
}
