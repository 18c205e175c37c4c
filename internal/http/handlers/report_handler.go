package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rmagbanua/barangay-backend/internal/http/handlers/common"
	"github.com/rmagbanua/barangay-backend/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Compliance GET /api/reports/compliance/:year
func (h *ReportHandler) Compliance(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		common.RespondBadRequest(c, "year must be a number")
		return
	}

	report, err := h.svc.Compliance(c.Request.Context(), year)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, report)
}
