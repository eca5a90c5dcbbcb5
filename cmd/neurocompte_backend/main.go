package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/adapters/extraction"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/adapters/notification"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/handlers"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/repositories/database/pgsql"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/pkg/config"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/pkg/database"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	docRepo := pgsql.NewPgxDocumentRepository(dbPool)
	caseFileRepo := pgsql.NewPgxCaseFileRepository(dbPool)
	entryRepo := pgsql.NewPgxEntryRepository(dbPool)
	accountRepo := pgsql.NewPgxAccountRepository(dbPool)
	rateRepo := pgsql.NewPgxExchangeRateRepository(dbPool)

	// Collaborators
	extractionClient := extraction.NewClient(cfg.ExtractionBaseURL, cfg.ExtractionTimeout)
	notifier := notification.NewWebhookNotifier(cfg.NotifyWebhookURL)

	// Core services
	conversionSvc := services.NewConversionService(rateRepo)
	duplicateSvc := services.NewDuplicateService(docRepo, entryRepo)
	builderSvc := services.NewEntryBuilderService(accountRepo, services.NewAccountLockManager())
	processingSvc := services.NewProcessingService(
		docRepo, caseFileRepo, entryRepo,
		extractionClient, services.NewResponseValidator(),
		conversionSvc, duplicateSvc, builderSvc, notifier,
		services.ProcessingConfig{MaxRetries: cfg.MaxRetries, RetryDelay: cfg.RetryDelay},
	)
	orchestrator := services.NewOrchestrator(docRepo, duplicateSvc, processingSvc,
		services.OrchestratorConfig{BatchSize: cfg.BatchSize, PollInterval: cfg.PollInterval})

	caseFileSvc := services.NewCaseFileService(caseFileRepo)
	documentSvc := services.NewDocumentService(docRepo, caseFileRepo, entryRepo)

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, caseFileSvc, documentSvc)

	// Orchestrator lifecycle: runs until the process receives a stop signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		if err := orchestrator.Run(middleware.ContextWithLogger(ctx, logger)); err != nil {
			logger.Error("Orchestrator exited with error", slog.String("error", err.Error()))
		}
	}()
	logger.Info("Orchestrator started",
		slog.Int("batch_size", cfg.BatchSize),
		slog.Duration("poll_interval", cfg.PollInterval))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	<-orchestratorDone
	logger.Info("Shutdown complete")
}

func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
