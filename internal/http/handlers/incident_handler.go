package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmagbanua/barangay-backend/internal/domain/valueobject"
	"github.com/rmagbanua/barangay-backend/internal/dto"
	"github.com/rmagbanua/barangay-backend/internal/http/handlers/common"
	"github.com/rmagbanua/barangay-backend/internal/service"
)

type IncidentHandler struct {
	svc *service.IncidentService
}

func NewIncidentHandler(svc *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{svc: svc}
}

// Submit POST /api/incidents
func (h *IncidentHandler) Submit(c *gin.Context) {
	var req dto.SubmitIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	residentID, err := parseOptionalUUID(req.ResidentID)
	if err != nil {
		common.RespondBadRequest(c, "invalid resident_id")
		return
	}

	incident, err := h.svc.Submit(c.Request.Context(), service.SubmitIncidentInput{
		ResidentID:   residentID,
		Title:        req.Title,
		Category:     req.Category,
		IncidentType: req.IncidentType,
		Sitio:        req.Sitio,
		Respondent:   req.Respondent,
		Description:  req.Description,
		Witnesses:    req.Witnesses,
		EvidencePath: req.EvidencePath,
		EvidenceMime: req.EvidenceMime,
	})
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusCreated, gin.H{
		"id":     incident.ID,
		"status": incident.Status,
	})
}

// Resolve POST /api/incidents/:id/resolve
func (h *IncidentHandler) Resolve(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.svc.Resolve(c.Request.Context(), id); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{
		"status": valueobject.IncidentStatusResolved,
	})
}

// Transfer POST /api/incidents/:id/transfer
func (h *IncidentHandler) Transfer(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	complaint, err := h.svc.Transfer(c.Request.Context(), id)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{
		"complaint_id":    complaint.ID,
		"tracking_number": complaint.TrackingNumber,
		"status":          valueobject.IncidentStatusTransferred,
	})
}
