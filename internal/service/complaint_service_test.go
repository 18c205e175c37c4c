package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
	"github.com/rmagbanua/barangay-backend/internal/repository"
)

type mockComplaintRepo struct {
	mock.Mock
}

func (m *mockComplaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 1
	}
	return args.Error(0)
}

func (m *mockComplaintRepo) GetByID(ctx context.Context, id int64) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) GetByTrackingNumber(ctx context.Context, tracking string) (*models.Complaint, error) {
	args := m.Called(ctx, tracking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) Accept(ctx context.Context, id int64, year int) (string, error) {
	args := m.Called(ctx, id, year)
	return args.String(0), args.Error(1)
}

func (m *mockComplaintRepo) Decline(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newComplaintService(repo *mockComplaintRepo) *ComplaintService {
	clock := fixedClock{t: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	return NewComplaintService(repo, NewTrackingGenerator(clock), clock)
}

func TestComplaintService_Submit_Success(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Complaint")).Return(nil)

	complaint, err := svc.Submit(ctx, SubmitComplaintInput{
		Title:       "Noise complaint",
		Category:    "Disturbance",
		Description: "Karaoke past midnight",
	})

	assert.NoError(t, err)
	assert.NotNil(t, complaint)
	assert.Equal(t, valueobject.ComplaintStatusPending, complaint.Status)
	assert.Regexp(t, `^CMP-20250314-[0-9A-F]{6}$`, complaint.TrackingNumber)
	assert.Nil(t, complaint.CaseNumber)
}

func TestComplaintService_Submit_Validation(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitComplaintInput{Category: "x", Description: "y"})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Submit(ctx, SubmitComplaintInput{Title: "x", Description: "y"})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Submit(ctx, SubmitComplaintInput{Title: "x", Category: "y"})
	assert.True(t, apperror.IsValidation(err))

	repo.AssertNotCalled(t, "Create")
}

func TestComplaintService_Submit_TrackingCollisionRetry(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Complaint")).
		Return(repository.ErrTrackingNumberTaken).Twice()
	repo.On("Create", ctx, mock.AnythingOfType("*models.Complaint")).
		Return(nil).Once()

	complaint, err := svc.Submit(ctx, SubmitComplaintInput{
		Title:       "Boundary dispute",
		Category:    "Civil",
		Description: "Fence moved",
	})

	assert.NoError(t, err)
	assert.NotNil(t, complaint)
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestComplaintService_Submit_TrackingRetryExhausted(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Complaint")).
		Return(repository.ErrTrackingNumberTaken)

	_, err := svc.Submit(ctx, SubmitComplaintInput{
		Title:       "Boundary dispute",
		Category:    "Civil",
		Description: "Fence moved",
	})

	assert.Error(t, err)
	repo.AssertNumberOfCalls(t, "Create", maxTrackingAttempts)
}

func TestComplaintService_Accept_Success(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Accept", ctx, int64(7), 2025).Return("2025-0001", nil)

	update, err := svc.Accept(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.ComplaintStatusInProgress, update.Status)
	assert.NotNil(t, update.CaseNumber)
	assert.Equal(t, "2025-0001", *update.CaseNumber)
}

func TestComplaintService_Accept_NotPending(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Accept", ctx, int64(7), 2025).Return("", repository.ErrComplaintNotPending)

	_, err := svc.Accept(ctx, 7)
	assert.True(t, apperror.IsConflict(err))
}

func TestComplaintService_Accept_NotFound(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Accept", ctx, int64(99), 2025).Return("", repository.ErrComplaintNotFound)

	_, err := svc.Accept(ctx, 99)
	assert.True(t, apperror.IsNotFound(err))
}

func TestComplaintService_Decline(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Decline", ctx, int64(3)).Return(nil)

	update, err := svc.Decline(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.ComplaintStatusCancelled, update.Status)
	assert.Nil(t, update.CaseNumber)
}

func TestComplaintService_Decline_LostRace(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Decline", ctx, int64(3)).Return(repository.ErrComplaintNotPending)

	_, err := svc.Decline(ctx, 3)
	assert.True(t, apperror.IsConflict(err))
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	repo := new(mockComplaintRepo)
	svc := newComplaintService(repo)
	ctx := context.Background()

	repo.On("Accept", ctx, int64(5), 2025).Return("2025-0012", nil)
	update, err := svc.UpdateStatus(ctx, 5, "accept")
	assert.NoError(t, err)
	assert.Equal(t, valueobject.ComplaintStatusInProgress, update.Status)

	_, err = svc.UpdateStatus(ctx, 5, "ARCHIVE")
	assert.True(t, apperror.IsValidation(err))
}

func TestFormatCaseNumber(t *testing.T) {
	assert.Equal(t, "2025-0001", models.FormatCaseNumber(2025, 1))
	assert.Equal(t, "2025-0042", models.FormatCaseNumber(2025, 42))
	assert.Equal(t, "2025-9999", models.FormatCaseNumber(2025, 9999))
	// Beyond four digits the number keeps growing instead of wrapping.
	assert.Equal(t, "2025-10000", models.FormatCaseNumber(2025, 10000))
}
