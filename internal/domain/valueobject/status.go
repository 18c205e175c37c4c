package valueobject

import "github.com/rmagbanua/barangay-backend/internal/pkg/apperror"

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "PENDING"
	ComplaintStatusInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintStatusResolved   ComplaintStatus = "RESOLVED"
	ComplaintStatusCancelled  ComplaintStatus = "CANCELLED"
)

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusCancelled:
		return true
	}
	return false
}

func (s ComplaintStatus) IsTerminal() bool {
	return s == ComplaintStatusResolved || s == ComplaintStatusCancelled
}

func (s ComplaintStatus) CanTransitionTo(newStatus ComplaintStatus) bool {
	transitions := map[ComplaintStatus][]ComplaintStatus{
		ComplaintStatusPending:    {ComplaintStatusInProgress, ComplaintStatusCancelled},
		ComplaintStatusInProgress: {ComplaintStatusResolved},
		ComplaintStatusResolved:   {},
		ComplaintStatusCancelled:  {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

type IncidentStatus string

const (
	IncidentStatusPending     IncidentStatus = "PENDING"
	IncidentStatusResolved    IncidentStatus = "RESOLVED"
	IncidentStatusTransferred IncidentStatus = "TRANSFERRED"
)

func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusPending, IncidentStatusResolved, IncidentStatusTransferred:
		return true
	}
	return false
}

func (s IncidentStatus) CanTransitionTo(newStatus IncidentStatus) bool {
	if s != IncidentStatusPending {
		return false
	}
	return newStatus == IncidentStatusResolved || newStatus == IncidentStatusTransferred
}

type HearingStatus string

const (
	HearingStatusPending   HearingStatus = "PENDING"
	HearingStatusApproved  HearingStatus = "APPROVED"
	HearingStatusCancelled HearingStatus = "CANCELLED"
	HearingStatusResolved  HearingStatus = "RESOLVED"
)

func (s HearingStatus) IsValid() bool {
	switch s {
	case HearingStatusPending, HearingStatusApproved, HearingStatusCancelled, HearingStatusResolved:
		return true
	}
	return false
}

func NewHearingStatus(status string) (HearingStatus, error) {
	s := HearingStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "invalid hearing status")
	}
	return s, nil
}

// ResolutionType is the Lupon outcome recorded when a hearing is closed out.
// TypePending keeps the case open; every other outcome is final.
type ResolutionType string

const (
	ResolutionTypeSettled    ResolutionType = "SETTLED"
	ResolutionTypeRepudiated ResolutionType = "REPUDIATED"
	ResolutionTypeWithdrawn  ResolutionType = "WITHDRAWN"
	ResolutionTypePending    ResolutionType = "PENDING"
	ResolutionTypeDismissed  ResolutionType = "DISMISSED"
	ResolutionTypeCertified  ResolutionType = "CERTIFIED"
	ResolutionTypeReferred   ResolutionType = "REFERRED"
)

func (t ResolutionType) IsValid() bool {
	switch t {
	case ResolutionTypeSettled, ResolutionTypeRepudiated, ResolutionTypeWithdrawn,
		ResolutionTypePending, ResolutionTypeDismissed, ResolutionTypeCertified, ResolutionTypeReferred:
		return true
	}
	return false
}

func NewResolutionType(value string) (ResolutionType, error) {
	t := ResolutionType(value)
	if !t.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "invalid resolution type")
	}
	return t, nil
}

type ResolutionMethod string

const (
	ResolutionMethodMediation    ResolutionMethod = "MEDIATION"
	ResolutionMethodConciliation ResolutionMethod = "CONCILIATION"
	ResolutionMethodArbitration  ResolutionMethod = "ARBITRATION"
)

func (m ResolutionMethod) IsValid() bool {
	switch m {
	case ResolutionMethodMediation, ResolutionMethodConciliation, ResolutionMethodArbitration:
		return true
	}
	return false
}

func NewResolutionMethod(value string) (ResolutionMethod, error) {
	m := ResolutionMethod(value)
	if !m.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "invalid resolution method")
	}
	return m, nil
}
