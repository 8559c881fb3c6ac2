package main

import (
	"fmt"
	"log"

	_ "alazab/docs"
	"alazab/internal/config"
	"alazab/internal/daftra"
	"alazab/internal/email/noop"
	"alazab/internal/email/ses"
	"alazab/internal/handler"
	"alazab/internal/magicplan"
	"alazab/internal/port"
	"alazab/internal/repository/postgres"
	"alazab/internal/router"
	"alazab/internal/service"
	"alazab/internal/storage/local"
	s3storage "alazab/internal/storage/s3"
)

// @title Alazab Construction Invoice API
// @version 1.0
// @description Invoice synchronization and department review service.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	invoiceRepo := postgres.NewInvoiceRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	auditRepo := postgres.NewAuditLogRepo(db)
	userRepo := postgres.NewUserRepo(db)
	projectRepo := postgres.NewProjectRepo(db)

	// Initialize storage
	vault, err := local.NewVault(cfg.Storage.Root)
	if err != nil {
		return fmt.Errorf("failed to initialize document vault: %w", err)
	}

	var archive port.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize archive storage: %w", err)
		}
	}

	// Initialize external sources
	source := daftra.NewClient(&cfg.Daftra)
	var gallery port.GallerySource
	if cfg.Magicplan.BaseURL != "" {
		gallery = magicplan.NewClient(&cfg.Magicplan)
	}

	emailSender, err := buildEmailSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	syncSvc := service.NewSyncService(invoiceRepo, auditRepo, source, vault, archive, &cfg.Archive, &cfg.Sync)
	reviewSvc := service.NewReviewService(reviewRepo, invoiceRepo, auditRepo, emailSender, cfg.Email.NotifyAddress)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, reviewRepo, projectRepo, auditRepo, vault)
	projectSvc := service.NewProjectService(projectRepo, gallery, auditRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	syncH := handler.NewSyncHandler(syncSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	projectH := handler.NewProjectHandler(projectSvc)
	reportH := handler.NewReportHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, invoiceH, syncH, reviewH, projectH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func buildEmailSender(cfg *config.Config) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
	default:
		return noop.NewNoopSender(), nil
	}
}
