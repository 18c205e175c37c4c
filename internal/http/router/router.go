package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rmagbanua/barangay-backend/internal/config"
	"github.com/rmagbanua/barangay-backend/internal/http/handlers"
	"github.com/rmagbanua/barangay-backend/internal/http/middleware"
	"github.com/rmagbanua/barangay-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	complaintHandler *handlers.ComplaintHandler,
	incidentHandler *handlers.IncidentHandler,
	hearingHandler *handlers.HearingHandler,
	reportHandler *handlers.ReportHandler,
	evidenceHandler *handlers.EvidenceHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Public intake routes, rate limited per IP.
	intakeRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/complaints", intakeRateLimit, complaintHandler.Submit)
	api.POST("/incidents", intakeRateLimit, incidentHandler.Submit)
	api.POST("/evidence", intakeRateLimit, evidenceHandler.Upload)

	// Public status lookup by tracking number.
	api.GET("/complaints/track/:tracking", complaintHandler.GetByTracking)

	// Staff routes.
	staff := api.Group("")
	staff.Use(middleware.AuthMiddleware(tokenManager))
	{
		staff.GET("/complaints/:id", complaintHandler.Get)
		staff.PATCH("/complaints/:id/status", complaintHandler.UpdateStatus)
		staff.POST("/complaints/:id/hearings", hearingHandler.Schedule)
		staff.PATCH("/hearings/:id/status", hearingHandler.UpdateStatus)
		staff.POST("/hearings/:id/resolution", hearingHandler.Resolve)
		staff.POST("/incidents/:id/resolve", incidentHandler.Resolve)
		staff.POST("/incidents/:id/transfer", incidentHandler.Transfer)
		staff.GET("/reports/compliance/:year", reportHandler.Compliance)
	}

	return r
}
