package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
)

type mockHearingReader struct {
	mock.Mock
}

func (m *mockHearingReader) ListForYear(ctx context.Context, year int) ([]models.HearingReportRow, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HearingReportRow), args.Error(1)
}

func strp(s string) *string { return &s }

func datep(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestReportService_Compliance(t *testing.T) {
	reader := new(mockHearingReader)
	svc := NewReportService(reader, nil)
	ctx := context.Background()

	rows := []models.HearingReportRow{
		{
			ScheduledDate:    datep(2025, time.March, 5),
			ComplaintType:    strp("Criminal Mischief"),
			ResolutionType:   strp("SETTLED"),
			ResolutionMethod: strp("MEDIATION"),
		},
		{
			ScheduledDate:  datep(2025, time.March, 20),
			ComplaintType:  strp("Civil"),
			ResolutionType: strp("DISMISSED"),
		},
		{
			ScheduledDate: datep(2025, time.July, 2),
			ComplaintType: strp("Boundary Dispute"),
			// No recorded resolution yet.
		},
	}
	reader.On("ListForYear", ctx, 2025).Return(rows, nil)

	report, err := svc.Compliance(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 2025, report.Year)

	march := report.Months[2]
	assert.Equal(t, 3, march.Month)
	assert.Equal(t, NatureBuckets{Criminal: 1, Civil: 1, Others: 0, Total: 2}, march.Nature)
	assert.Equal(t, SettledBuckets{Mediation: 1, Total: 1}, march.Settled)
	assert.Equal(t, UnsettledBuckets{Dismissed: 1, Total: 1}, march.Unsettled)
	assert.Equal(t, savingsPerSettlement, march.Savings)

	july := report.Months[6]
	assert.Equal(t, NatureBuckets{Others: 1, Total: 1}, july.Nature)
	assert.Equal(t, UnsettledBuckets{Pending: 1, Total: 1}, july.Unsettled)
	assert.Equal(t, 0, july.Savings)

	assert.Equal(t, NatureBuckets{Criminal: 1, Civil: 1, Others: 1, Total: 3}, report.Totals.Nature)
	assert.Equal(t, SettledBuckets{Mediation: 1, Total: 1}, report.Totals.Settled)
	assert.Equal(t, UnsettledBuckets{Dismissed: 1, Pending: 1, Total: 2}, report.Totals.Unsettled)
	assert.Equal(t, savingsPerSettlement, report.Totals.Savings)
}

func TestReportService_Compliance_EmptyYear(t *testing.T) {
	reader := new(mockHearingReader)
	svc := NewReportService(reader, nil)
	ctx := context.Background()

	reader.On("ListForYear", ctx, 2024).Return([]models.HearingReportRow{}, nil)

	report, err := svc.Compliance(ctx, 2024)
	assert.NoError(t, err)
	for i, m := range report.Months {
		assert.Equal(t, i+1, m.Month)
		assert.Equal(t, 0, m.Nature.Total)
		assert.Equal(t, 0, m.Settled.Total)
		assert.Equal(t, 0, m.Unsettled.Total)
	}
	assert.Equal(t, 0, report.Totals.Savings)
}

func TestReportService_Compliance_NatureIsSubstringMatch(t *testing.T) {
	reader := new(mockHearingReader)
	svc := NewReportService(reader, nil)
	ctx := context.Background()

	rows := []models.HearingReportRow{
		{ScheduledDate: datep(2025, time.January, 1), ComplaintType: strp("CRIMINAL - theft")},
		{ScheduledDate: datep(2025, time.January, 2), ComplaintType: strp("small civil claim")},
		{ScheduledDate: datep(2025, time.January, 3), ComplaintType: nil},
	}
	reader.On("ListForYear", ctx, 2025).Return(rows, nil)

	report, err := svc.Compliance(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, NatureBuckets{Criminal: 1, Civil: 1, Others: 1, Total: 3}, report.Months[0].Nature)
}

func TestReportService_Compliance_UndatedRowsSkipped(t *testing.T) {
	reader := new(mockHearingReader)
	svc := NewReportService(reader, nil)
	ctx := context.Background()

	rows := []models.HearingReportRow{
		{ScheduledDate: nil, ComplaintType: strp("Civil"), ResolutionType: strp("SETTLED"), ResolutionMethod: strp("ARBITRATION")},
	}
	reader.On("ListForYear", ctx, 2025).Return(rows, nil)

	report, err := svc.Compliance(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 0, report.Totals.Nature.Total)
	assert.Equal(t, 0, report.Totals.Savings)
}

func TestReportService_Compliance_InvalidYear(t *testing.T) {
	reader := new(mockHearingReader)
	svc := NewReportService(reader, nil)

	_, err := svc.Compliance(context.Background(), 180)
	assert.True(t, apperror.IsValidation(err))
	reader.AssertNotCalled(t, "ListForYear")
}

func TestReportService_Compliance_Cached(t *testing.T) {
	reader := new(mockHearingReader)
	svc := NewReportService(reader, NewCacheService())
	ctx := context.Background()

	reader.On("ListForYear", ctx, 2025).Return([]models.HearingReportRow{}, nil)

	first, err := svc.Compliance(ctx, 2025)
	assert.NoError(t, err)
	second, err := svc.Compliance(ctx, 2025)
	assert.NoError(t, err)
	assert.Same(t, first, second)
	reader.AssertNumberOfCalls(t, "ListForYear", 1)

	svc.InvalidateYear(2025)
	_, err = svc.Compliance(ctx, 2025)
	assert.NoError(t, err)
	reader.AssertNumberOfCalls(t, "ListForYear", 2)
}
