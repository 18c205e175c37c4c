package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
	"github.com/rmagbanua/barangay-backend/internal/repository"
)

type HearingRepository interface {
	Create(ctx context.Context, h *models.HearingSchedule) error
	GetByID(ctx context.Context, id int64) (*models.HearingSchedule, error)
	CountByComplaint(ctx context.Context, complaintID int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, to valueobject.HearingStatus) error
	Resolve(ctx context.Context, id int64,
		resType valueobject.ResolutionType, resMethod *valueobject.ResolutionMethod,
		resNotes *string, resolvedAt *time.Time,
		hearingStatus valueobject.HearingStatus, complaintStatus valueobject.ComplaintStatus) (time.Time, error)
}

type ComplaintGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Complaint, error)
}

// ReportInvalidator drops a cached compliance report after a resolution
// changes the underlying data.
type ReportInvalidator interface {
	InvalidateYear(year int)
}

type HearingService struct {
	repo       HearingRepository
	complaints ComplaintGetter
	clock      Clock
	reports    ReportInvalidator
}

func NewHearingService(repo HearingRepository, complaints ComplaintGetter, clock Clock) *HearingService {
	return &HearingService{repo: repo, complaints: complaints, clock: clock}
}

// SetReportInvalidator wires the compliance report cache. Optional.
func (s *HearingService) SetReportInvalidator(r ReportInvalidator) {
	s.reports = r
}

// ScheduleResult pairs the new hearing with the attempt count so far.
type ScheduleResult struct {
	Hearing      *models.HearingSchedule `json:"hearing"`
	AttemptCount int                     `json:"attempt_count"`
}

// Schedule attaches a new hearing attempt to an in-progress complaint.
// Re-invocation for the same complaint is deliberate: rescheduling inserts a
// fresh row and the previous attempts stay untouched for reporting.
func (s *HearingService) Schedule(ctx context.Context, complaintID int64, date time.Time, timeOfDay, location string, notes *string) (*ScheduleResult, error) {
	if date.IsZero() {
		return nil, apperror.New(apperror.ErrCodeValidation, "scheduled date is required")
	}
	if strings.TrimSpace(location) == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "location is required")
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != valueobject.ComplaintStatusInProgress {
		return nil, apperror.New(apperror.ErrCodeConflict, "complaint is not in progress")
	}

	hearing := &models.HearingSchedule{
		ComplaintID:   complaintID,
		ScheduledDate: date,
		ScheduledTime: timeOfDay,
		Location:      location,
		Notes:         notes,
		Status:        valueobject.HearingStatusPending,
	}
	if err := s.repo.Create(ctx, hearing); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to schedule hearing")
	}

	count, err := s.repo.CountByComplaint(ctx, complaintID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to count hearing attempts")
	}
	return &ScheduleResult{Hearing: hearing, AttemptCount: count}, nil
}

// UpdateStatus approves or cancels a pending hearing.
func (s *HearingService) UpdateStatus(ctx context.Context, id int64, action string) (valueobject.HearingStatus, error) {
	var to valueobject.HearingStatus
	switch strings.ToUpper(action) {
	case "APPROVE":
		to = valueobject.HearingStatusApproved
	case "CANCEL":
		to = valueobject.HearingStatusCancelled
	default:
		return "", apperror.New(apperror.ErrCodeValidation, "action must be APPROVE or CANCEL")
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return "", translateHearingErr(err)
	}
	return to, nil
}

// ResolveInput carries the hearing resolution fields.
type ResolveInput struct {
	ResolutionType   string
	ResolutionMethod *string
	ResolutionNotes  *string
}

// ResolutionResult is the recorded outcome.
type ResolutionResult struct {
	ResolutionType   valueobject.ResolutionType    `json:"resolution_type"`
	ResolutionMethod *valueobject.ResolutionMethod `json:"resolution_method,omitempty"`
	HearingStatus    valueobject.HearingStatus     `json:"hearing_status"`
	ComplaintStatus  valueobject.ComplaintStatus   `json:"complaint_status"`
}

// Resolve records the outcome of a hearing and propagates the status to the
// parent complaint atomically. A PENDING resolution keeps the case open;
// every other type closes both the hearing and the complaint. Re-invocation
// overwrites the previous resolution.
func (s *HearingService) Resolve(ctx context.Context, hearingID int64, in ResolveInput) (*ResolutionResult, error) {
	resType, err := valueobject.NewResolutionType(in.ResolutionType)
	if err != nil {
		return nil, err
	}

	var resMethod *valueobject.ResolutionMethod
	if resType == valueobject.ResolutionTypeSettled {
		if in.ResolutionMethod == nil || strings.TrimSpace(*in.ResolutionMethod) == "" {
			return nil, apperror.New(apperror.ErrCodeValidation, "resolution method is required for settled cases")
		}
		m, err := valueobject.NewResolutionMethod(*in.ResolutionMethod)
		if err != nil {
			return nil, err
		}
		resMethod = &m
	} else if in.ResolutionMethod != nil && strings.TrimSpace(*in.ResolutionMethod) != "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "resolution method is only allowed for settled cases")
	}

	hearingStatus := valueobject.HearingStatusResolved
	complaintStatus := valueobject.ComplaintStatusResolved
	var resolvedAt *time.Time
	if resType == valueobject.ResolutionTypePending {
		// The case stays open: hearing back to pending, complaint reopened.
		hearingStatus = valueobject.HearingStatusPending
		complaintStatus = valueobject.ComplaintStatusInProgress
	} else {
		now := s.clock.Now()
		resolvedAt = &now
	}

	scheduledDate, err := s.repo.Resolve(ctx, hearingID, resType, resMethod, in.ResolutionNotes, resolvedAt, hearingStatus, complaintStatus)
	if err != nil {
		return nil, translateHearingErr(err)
	}

	if s.reports != nil {
		// The report buckets by scheduled date, so that year went stale, not
		// necessarily the current one.
		s.reports.InvalidateYear(scheduledDate.Year())
	}

	return &ResolutionResult{
		ResolutionType:   resType,
		ResolutionMethod: resMethod,
		HearingStatus:    hearingStatus,
		ComplaintStatus:  complaintStatus,
	}, nil
}

func (s *HearingService) GetByID(ctx context.Context, id int64) (*models.HearingSchedule, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateHearingErr(err)
	}
	return h, nil
}

func translateHearingErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrHearingNotFound):
		return apperror.ErrHearingNotFound
	case errors.Is(err, repository.ErrHearingNotPending):
		return apperror.ErrHearingNotPending
	default:
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "hearing operation failed")
	}
}
