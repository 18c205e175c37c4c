package dto

// SubmitComplaintRequest is the public complaint intake form.
type SubmitComplaintRequest struct {
	ResidentID    *string `json:"resident_id"`
	Title         string  `json:"title" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	ComplaintType *string `json:"complaint_type"`
	Sitio         *string `json:"sitio"`
	Respondent    *string `json:"respondent"`
	Description   string  `json:"description" binding:"required"`
	Witnesses     *string `json:"witnesses"`
	EvidencePath  *string `json:"evidence_path"`
	EvidenceMime  *string `json:"evidence_mime"`
}

// SubmitIncidentRequest is the public incident report form.
type SubmitIncidentRequest struct {
	ResidentID   *string `json:"resident_id"`
	Title        string  `json:"title" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	IncidentType *string `json:"incident_type"`
	Sitio        *string `json:"sitio"`
	Respondent   *string `json:"respondent"`
	Description  string  `json:"description" binding:"required"`
	Witnesses    *string `json:"witnesses"`
	EvidencePath *string `json:"evidence_path"`
	EvidenceMime *string `json:"evidence_mime"`
}

// UpdateComplaintStatusRequest carries the staff triage decision.
type UpdateComplaintStatusRequest struct {
	Action string `json:"action" binding:"required"`
}

// ScheduleHearingRequest schedules a conciliation attempt.
type ScheduleHearingRequest struct {
	Date     string  `json:"date" binding:"required"`
	Time     string  `json:"time" binding:"required"`
	Location string  `json:"location" binding:"required"`
	Notes    *string `json:"notes"`
}

// UpdateHearingStatusRequest approves or cancels a pending hearing.
type UpdateHearingStatusRequest struct {
	Action string `json:"action" binding:"required"`
}

// ResolveHearingRequest records a hearing outcome.
type ResolveHearingRequest struct {
	ResolutionType   string  `json:"resolution_type" binding:"required"`
	ResolutionMethod *string `json:"resolution_method"`
	ResolutionNotes  *string `json:"resolution_notes"`
}
