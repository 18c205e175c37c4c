package models

import (
	"time"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
)

// HearingSchedule is one conciliation attempt for a complaint. Rescheduling
// inserts a new row; the attempt history is never mutated.
type HearingSchedule struct {
	ID               int64                         `db:"id" json:"id"`
	ComplaintID      int64                         `db:"complaint_id" json:"complaint_id"`
	ScheduledDate    time.Time                     `db:"scheduled_date" json:"scheduled_date"`
	ScheduledTime    string                        `db:"scheduled_time" json:"scheduled_time"`
	Location         string                        `db:"location" json:"location"`
	Notes            *string                       `db:"notes" json:"notes,omitempty"`
	Status           valueobject.HearingStatus     `db:"status" json:"status"`
	ResolutionType   *valueobject.ResolutionType   `db:"resolution_type" json:"resolution_type,omitempty"`
	ResolutionMethod *valueobject.ResolutionMethod `db:"resolution_method" json:"resolution_method,omitempty"`
	ResolutionNotes  *string                       `db:"resolution_notes" json:"resolution_notes,omitempty"`
	ResolvedAt       *time.Time                    `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt        time.Time                     `db:"created_at" json:"created_at"`
}

// HearingReportRow is the joined projection the compliance report reduces over.
type HearingReportRow struct {
	ScheduledDate    *time.Time `db:"scheduled_date"`
	ComplaintType    *string    `db:"complaint_type"`
	ResolutionType   *string    `db:"resolution_type"`
	ResolutionMethod *string    `db:"resolution_method"`
}
