package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
)

// Incident is an informal report of an event. It can be resolved in place
// or escalated into a Complaint, after which it is immutable.
type Incident struct {
	ID            int64                      `db:"id" json:"id"`
	ResidentID    *uuid.UUID                 `db:"resident_id" json:"resident_id,omitempty"`
	Title         string                     `db:"title" json:"title"`
	Category      string                     `db:"category" json:"category"`
	IncidentType  *string                    `db:"incident_type" json:"incident_type,omitempty"`
	Sitio         *string                    `db:"sitio" json:"sitio,omitempty"`
	Respondent    *string                    `db:"respondent" json:"respondent,omitempty"`
	Description   string                     `db:"description" json:"description"`
	Witnesses     *string                    `db:"witnesses" json:"witnesses,omitempty"`
	EvidencePath  *string                    `db:"evidence_path" json:"evidence_path,omitempty"`
	EvidenceMime  *string                    `db:"evidence_mime" json:"evidence_mime,omitempty"`
	Status        valueobject.IncidentStatus `db:"status" json:"status"`
	ResolvedAt    *time.Time                 `db:"resolved_at" json:"resolved_at,omitempty"`
	TransferredAt *time.Time                 `db:"transferred_at" json:"transferred_at,omitempty"`
	CreatedAt     time.Time                  `db:"created_at" json:"created_at"`
}
