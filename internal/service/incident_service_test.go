package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
	"github.com/rmagbanua/barangay-backend/internal/repository"
)

type mockIncidentRepo struct {
	mock.Mock
}

func (m *mockIncidentRepo) Create(ctx context.Context, in *models.Incident) error {
	args := m.Called(ctx, in)
	if args.Error(0) == nil {
		in.ID = 1
	}
	return args.Error(0)
}

func (m *mockIncidentRepo) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Incident), args.Error(1)
}

func (m *mockIncidentRepo) Resolve(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockIncidentRepo) MarkTransferred(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type mockComplaintIntake struct {
	mock.Mock
}

func (m *mockComplaintIntake) CreateWithTracking(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 10
		c.TrackingNumber = "CMP-20250314-ABCDEF"
	}
	return args.Error(0)
}

func newIncidentService(repo *mockIncidentRepo, intake *mockComplaintIntake) *IncidentService {
	clock := fixedClock{t: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	return NewIncidentService(repo, intake, clock)
}

func pendingIncident(residentID *uuid.UUID) *models.Incident {
	incidentType := "Criminal Mischief"
	sitio := "Sitio Proper"
	return &models.Incident{
		ID:           4,
		ResidentID:   residentID,
		Title:        "Broken fence",
		Category:     "Property",
		IncidentType: &incidentType,
		Sitio:        &sitio,
		Description:  "Neighbor's goat broke the fence",
		Status:       valueobject.IncidentStatusPending,
	}
}

func TestIncidentService_Transfer_Success(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	residentID := uuid.New()
	incident := pendingIncident(&residentID)

	repo.On("GetByID", ctx, int64(4)).Return(incident, nil)
	intake.On("CreateWithTracking", ctx, mock.AnythingOfType("*models.Complaint")).Return(nil)
	repo.On("MarkTransferred", ctx, int64(4), mock.AnythingOfType("time.Time")).Return(nil)

	complaint, err := svc.Transfer(ctx, 4)
	assert.NoError(t, err)
	assert.NotNil(t, complaint)

	// The complaint is seeded from the incident and starts pending, no case
	// number.
	assert.Equal(t, incident.Title, complaint.Title)
	assert.Equal(t, incident.Category, complaint.Category)
	assert.Equal(t, incident.IncidentType, complaint.ComplaintType)
	assert.Equal(t, incident.Sitio, complaint.Sitio)
	assert.Equal(t, valueobject.ComplaintStatusPending, complaint.Status)
	assert.Nil(t, complaint.CaseNumber)

	intake.AssertNumberOfCalls(t, "CreateWithTracking", 1)
}

func TestIncidentService_Transfer_AlreadyTransferred(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	residentID := uuid.New()
	incident := pendingIncident(&residentID)
	incident.Status = valueobject.IncidentStatusTransferred

	repo.On("GetByID", ctx, int64(4)).Return(incident, nil)

	_, err := svc.Transfer(ctx, 4)
	assert.True(t, apperror.IsConflict(err))

	// No second complaint must ever be created.
	intake.AssertNotCalled(t, "CreateWithTracking")
	repo.AssertNotCalled(t, "MarkTransferred")
}

func TestIncidentService_Transfer_ResolvedIncident(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	residentID := uuid.New()
	incident := pendingIncident(&residentID)
	incident.Status = valueobject.IncidentStatusResolved

	repo.On("GetByID", ctx, int64(4)).Return(incident, nil)

	// RESOLVED is terminal: a closed incident cannot become a complaint.
	_, err := svc.Transfer(ctx, 4)
	assert.True(t, apperror.IsConflict(err))
	intake.AssertNotCalled(t, "CreateWithTracking")
	repo.AssertNotCalled(t, "MarkTransferred")
}

func TestIncidentService_Transfer_NoResident(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	incident := pendingIncident(nil)
	repo.On("GetByID", ctx, int64(4)).Return(incident, nil)

	_, err := svc.Transfer(ctx, 4)
	assert.True(t, apperror.IsValidation(err))
	intake.AssertNotCalled(t, "CreateWithTracking")
}

func TestIncidentService_Transfer_LostRaceOnFlip(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	residentID := uuid.New()
	repo.On("GetByID", ctx, int64(4)).Return(pendingIncident(&residentID), nil)
	intake.On("CreateWithTracking", ctx, mock.AnythingOfType("*models.Complaint")).Return(nil)
	repo.On("MarkTransferred", ctx, int64(4), mock.AnythingOfType("time.Time")).
		Return(repository.ErrIncidentTransferred)

	_, err := svc.Transfer(ctx, 4)
	assert.True(t, apperror.IsConflict(err))
}

func TestIncidentService_Resolve(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	repo.On("Resolve", ctx, int64(4), mock.AnythingOfType("time.Time")).Return(nil)
	assert.NoError(t, svc.Resolve(ctx, 4))
}

func TestIncidentService_Resolve_NotPending(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	repo.On("Resolve", ctx, int64(4), mock.AnythingOfType("time.Time")).
		Return(repository.ErrIncidentNotPending)

	err := svc.Resolve(ctx, 4)
	assert.True(t, apperror.IsConflict(err))
}

func TestIncidentService_Submit_Validation(t *testing.T) {
	repo := new(mockIncidentRepo)
	intake := new(mockComplaintIntake)
	svc := newIncidentService(repo, intake)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitIncidentInput{Title: " ", Category: "x", Description: "y"})
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create")
}
