package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/models"
	"github.com/rmagbanua/barangay-backend/internal/pkg/apperror"
)

// savingsPerSettlement is the fixed estimate, in pesos, of court costs saved
// per amicably settled case, as used in the KP compliance report.
const savingsPerSettlement = 9500

const reportCacheTTL = 10 * time.Minute

type HearingReportReader interface {
	ListForYear(ctx context.Context, year int) ([]models.HearingReportRow, error)
}

type NatureBuckets struct {
	Criminal int `json:"criminal"`
	Civil    int `json:"civil"`
	Others   int `json:"others"`
	Total    int `json:"total"`
}

type SettledBuckets struct {
	Mediation    int `json:"mediation"`
	Conciliation int `json:"conciliation"`
	Arbitration  int `json:"arbitration"`
	Total        int `json:"total"`
}

type UnsettledBuckets struct {
	Repudiated int `json:"repudiated"`
	Withdrawn  int `json:"withdrawn"`
	Pending    int `json:"pending"`
	Dismissed  int `json:"dismissed"`
	Certified  int `json:"certified"`
	Referred   int `json:"referred"`
	Total      int `json:"total"`
}

type MonthCompliance struct {
	Month     int              `json:"month"`
	Nature    NatureBuckets    `json:"nature"`
	Settled   SettledBuckets   `json:"settled"`
	Unsettled UnsettledBuckets `json:"unsettled"`
	Savings   int              `json:"savings"`
}

type ComplianceTotals struct {
	Nature    NatureBuckets    `json:"nature"`
	Settled   SettledBuckets   `json:"settled"`
	Unsettled UnsettledBuckets `json:"unsettled"`
	Savings   int              `json:"savings"`
}

type ComplianceReport struct {
	Year   int                `json:"year"`
	Months [12]MonthCompliance `json:"months"`
	Totals ComplianceTotals   `json:"totals"`
}

// ReportService builds the monthly/annual KP compliance rollup. It is a pure
// reduce over stored hearings; the only state is the report cache.
type ReportService struct {
	hearings HearingReportReader
	cache    *CacheService
}

func NewReportService(hearings HearingReportReader, cache *CacheService) *ReportService {
	return &ReportService{hearings: hearings, cache: cache}
}

func complianceCacheKey(year int) string {
	return fmt.Sprintf("compliance:%d", year)
}

// InvalidateYear drops the cached report for a year.
func (s *ReportService) InvalidateYear(year int) {
	if s.cache != nil {
		s.cache.Delete(complianceCacheKey(year))
	}
}

// Compliance aggregates every dated hearing of the year into its calendar
// month: one nature bucket per hearing, one settled or unsettled bucket per
// hearing, and a fixed savings estimate per settlement.
func (s *ReportService) Compliance(ctx context.Context, year int) (*ComplianceReport, error) {
	if year < 1900 || year > 9999 {
		return nil, apperror.New(apperror.ErrCodeValidation, "invalid year")
	}

	key := complianceCacheKey(year)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if report, ok := cached.(*ComplianceReport); ok {
				return report, nil
			}
		}
	}

	rows, err := s.hearings.ListForYear(ctx, year)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load hearings for report")
	}

	report := &ComplianceReport{Year: year}
	for i := range report.Months {
		report.Months[i].Month = i + 1
	}

	for _, row := range rows {
		if row.ScheduledDate == nil {
			continue
		}
		m := &report.Months[int(row.ScheduledDate.Month())-1]

		tallyNature(&m.Nature, row.ComplaintType)
		tallyResolution(m, row.ResolutionType, row.ResolutionMethod)
	}

	for i := range report.Months {
		m := &report.Months[i]
		addNature(&report.Totals.Nature, m.Nature)
		addSettled(&report.Totals.Settled, m.Settled)
		addUnsettled(&report.Totals.Unsettled, m.Unsettled)
		report.Totals.Savings += m.Savings
	}

	if s.cache != nil {
		s.cache.Set(key, report, reportCacheTTL)
	}
	return report, nil
}

// tallyNature classifies the dispute by case-insensitive substring of the
// complaint type: "criminal", "civil", anything else is others.
func tallyNature(n *NatureBuckets, complaintType *string) {
	t := ""
	if complaintType != nil {
		t = strings.ToLower(*complaintType)
	}
	switch {
	case strings.Contains(t, "criminal"):
		n.Criminal++
	case strings.Contains(t, "civil"):
		n.Civil++
	default:
		n.Others++
	}
	n.Total++
}

func tallyResolution(m *MonthCompliance, resType, resMethod *string) {
	t := ""
	if resType != nil {
		t = strings.ToUpper(strings.TrimSpace(*resType))
	}

	if t == string(valueobject.ResolutionTypeSettled) {
		method := ""
		if resMethod != nil {
			method = strings.ToUpper(strings.TrimSpace(*resMethod))
		}
		switch method {
		case string(valueobject.ResolutionMethodMediation):
			m.Settled.Mediation++
		case string(valueobject.ResolutionMethodConciliation):
			m.Settled.Conciliation++
		case string(valueobject.ResolutionMethodArbitration):
			m.Settled.Arbitration++
		}
		m.Settled.Total++
		m.Savings += savingsPerSettlement
		return
	}

	switch t {
	case string(valueobject.ResolutionTypeRepudiated):
		m.Unsettled.Repudiated++
	case string(valueobject.ResolutionTypeWithdrawn):
		m.Unsettled.Withdrawn++
	case string(valueobject.ResolutionTypeDismissed):
		m.Unsettled.Dismissed++
	case string(valueobject.ResolutionTypeCertified):
		m.Unsettled.Certified++
	case string(valueobject.ResolutionTypeReferred):
		m.Unsettled.Referred++
	default:
		// PENDING and hearings without a recorded resolution both count as
		// unsettled-pending.
		m.Unsettled.Pending++
	}
	m.Unsettled.Total++
}

func addNature(dst *NatureBuckets, src NatureBuckets) {
	dst.Criminal += src.Criminal
	dst.Civil += src.Civil
	dst.Others += src.Others
	dst.Total += src.Total
}

func addSettled(dst *SettledBuckets, src SettledBuckets) {
	dst.Mediation += src.Mediation
	dst.Conciliation += src.Conciliation
	dst.Arbitration += src.Arbitration
	dst.Total += src.Total
}

func addUnsettled(dst *UnsettledBuckets, src UnsettledBuckets) {
	dst.Repudiated += src.Repudiated
	dst.Withdrawn += src.Withdrawn
	dst.Pending += src.Pending
	dst.Dismissed += src.Dismissed
	dst.Certified += src.Certified
	dst.Referred += src.Referred
	dst.Total += src.Total
}
