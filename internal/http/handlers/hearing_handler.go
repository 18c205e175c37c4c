package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmagbanua/barangay-backend/internal/dto"
	"github.com/rmagbanua/barangay-backend/internal/http/handlers/common"
	"github.com/rmagbanua/barangay-backend/internal/service"
)

type HearingHandler struct {
	svc *service.HearingService
}

func NewHearingHandler(svc *service.HearingService) *HearingHandler {
	return &HearingHandler{svc: svc}
}

// Schedule POST /api/complaints/:id/hearings
func (h *HearingHandler) Schedule(c *gin.Context) {
	complaintID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ScheduleHearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		common.RespondBadRequest(c, "date must be in YYYY-MM-DD format")
		return
	}

	result, err := h.svc.Schedule(c.Request.Context(), complaintID, date, req.Time, req.Location, req.Notes)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusCreated, gin.H{
		"hearing_id":    result.Hearing.ID,
		"status":        result.Hearing.Status,
		"attempt_count": result.AttemptCount,
	})
}

// UpdateStatus PATCH /api/hearings/:id/status
func (h *HearingHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateHearingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	status, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Action)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{"status": status})
}

// Resolve POST /api/hearings/:id/resolution
func (h *HearingHandler) Resolve(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ResolveHearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Resolve(c.Request.Context(), id, service.ResolveInput{
		ResolutionType:   req.ResolutionType,
		ResolutionMethod: req.ResolutionMethod,
		ResolutionNotes:  req.ResolutionNotes,
	})
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, result)
}
