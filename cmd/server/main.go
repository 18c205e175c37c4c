package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rmagbanua/barangay-backend/internal/config"
	"github.com/rmagbanua/barangay-backend/internal/db"
	httpHandlers "github.com/rmagbanua/barangay-backend/internal/http/handlers"
	httpRouter "github.com/rmagbanua/barangay-backend/internal/http/router"
	"github.com/rmagbanua/barangay-backend/internal/logger"
	"github.com/rmagbanua/barangay-backend/internal/repository"
	"github.com/rmagbanua/barangay-backend/internal/service"
	"github.com/rmagbanua/barangay-backend/internal/storage"
)

func main() {
	// Context for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load configuration: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
	}
	logger.Init(logLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Database connection and migrations.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: failed to connect to database: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: migrations failed: %v", err)
	}

	// Supporting services.
	tokenManager := service.NewTokenManager(cfg.JWTSecret)
	clock := service.SystemClock()
	tracking := service.NewTrackingGenerator(clock)

	evidenceStorage, err := storage.NewEvidenceStorage(cfg.EvidenceStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: failed to prepare evidence storage: %v", err)
	}

	// Repositories.
	complaintRepo := repository.NewComplaintRepository(dbConn)
	incidentRepo := repository.NewIncidentRepository(dbConn)
	hearingRepo := repository.NewHearingRepository(dbConn)

	// Services.
	cache := service.NewCacheService()
	complaintService := service.NewComplaintService(complaintRepo, tracking, clock)
	incidentService := service.NewIncidentService(incidentRepo, complaintService, clock)
	hearingService := service.NewHearingService(hearingRepo, complaintRepo, clock)
	reportService := service.NewReportService(hearingRepo, cache)

	// Resolutions change the underlying report data.
	hearingService.SetReportInvalidator(reportService)

	// HTTP handlers.
	complaintHandler := httpHandlers.NewComplaintHandler(complaintService)
	incidentHandler := httpHandlers.NewIncidentHandler(incidentService)
	hearingHandler := httpHandlers.NewHearingHandler(hearingService)
	reportHandler := httpHandlers.NewReportHandler(reportService)
	evidenceHandler := httpHandlers.NewEvidenceHandler(evidenceStorage)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	engine := httpRouter.SetupRouter(cfg, complaintHandler, incidentHandler, hearingHandler, reportHandler, evidenceHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Shut the server down on signal.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: failed to stop http server: %v", err)
		}
	}()

	log.Printf("main: HTTP server listening on port %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: server exited with error: %v", err)
	}
}

func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: failed to close database: %v", err)
	}
}
