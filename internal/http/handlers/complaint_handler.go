package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rmagbanua/barangay-backend/internal/dto"
	"github.com/rmagbanua/barangay-backend/internal/http/handlers/common"
	"github.com/rmagbanua/barangay-backend/internal/logger"
	"github.com/rmagbanua/barangay-backend/internal/service"
)

type ComplaintHandler struct {
	svc *service.ComplaintService
}

func NewComplaintHandler(svc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{svc: svc}
}

// Submit POST /api/complaints
func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req dto.SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	residentID, err := parseOptionalUUID(req.ResidentID)
	if err != nil {
		common.RespondBadRequest(c, "invalid resident_id")
		return
	}

	complaint, err := h.svc.Submit(c.Request.Context(), service.SubmitComplaintInput{
		ResidentID:    residentID,
		Title:         req.Title,
		Category:      req.Category,
		ComplaintType: req.ComplaintType,
		Sitio:         req.Sitio,
		Respondent:    req.Respondent,
		Description:   req.Description,
		Witnesses:     req.Witnesses,
		EvidencePath:  req.EvidencePath,
		EvidenceMime:  req.EvidenceMime,
	})
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusCreated, gin.H{
		"id":              complaint.ID,
		"tracking_number": complaint.TrackingNumber,
		"status":          complaint.Status,
	})
}

// UpdateStatus PATCH /api/complaints/:id/status
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	update, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Action)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	if staffID, err := common.CurrentUserID(c); err == nil && logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"complaint_id": id,
			"action":       req.Action,
			"staff_id":     staffID,
		}).Info("Complaint triage decision")
	}

	common.RespondSuccess(c, http.StatusOK, update)
}

// GetByTracking GET /api/complaints/track/:tracking
func (h *ComplaintHandler) GetByTracking(c *gin.Context) {
	tracking := c.Param("tracking")
	if tracking == "" {
		common.RespondBadRequest(c, "tracking number is required")
		return
	}

	complaint, err := h.svc.GetByTracking(c.Request.Context(), tracking)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, complaint)
}

// Get GET /api/complaints/:id
func (h *ComplaintHandler) Get(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	complaint, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, complaint)
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
