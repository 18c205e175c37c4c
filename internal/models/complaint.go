package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
)

// Complaint is a formal dispute record filed by a resident against a
// respondent. TrackingNumber is public and assigned at submission;
// CaseNumber is the official docket identifier and exists only once the
// complaint has been accepted for processing.
type Complaint struct {
	ID             int64                       `db:"id" json:"id"`
	TrackingNumber string                      `db:"tracking_number" json:"tracking_number"`
	CaseNumber     *string                     `db:"case_number" json:"case_number,omitempty"`
	ResidentID     *uuid.UUID                  `db:"resident_id" json:"resident_id,omitempty"`
	Title          string                      `db:"title" json:"title"`
	Category       string                      `db:"category" json:"category"`
	ComplaintType  *string                     `db:"complaint_type" json:"complaint_type,omitempty"`
	Sitio          *string                     `db:"sitio" json:"sitio,omitempty"`
	Respondent     *string                     `db:"respondent" json:"respondent,omitempty"`
	Description    string                      `db:"description" json:"description"`
	Witnesses      *string                     `db:"witnesses" json:"witnesses,omitempty"`
	EvidencePath   *string                     `db:"evidence_path" json:"evidence_path,omitempty"`
	EvidenceMime   *string                     `db:"evidence_mime" json:"evidence_mime,omitempty"`
	Status         valueobject.ComplaintStatus `db:"status" json:"status"`
	CreatedAt      time.Time                   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time                   `db:"updated_at" json:"updated_at"`
}

// FormatCaseNumber renders the year-scoped docket number, e.g. "2025-0042".
func FormatCaseNumber(year, seq int) string {
	return fmt.Sprintf("%d-%04d", year, seq)
}
