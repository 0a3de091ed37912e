package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-tracker-backend/config"
	_ "job-tracker-backend/docs" // Important for Swagger
	"job-tracker-backend/internal/delivery/http/middleware"
	v1 "job-tracker-backend/internal/delivery/http/v1"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository"
	"job-tracker-backend/internal/repository/guest"
	"job-tracker-backend/internal/repository/postgres"
	"job-tracker-backend/internal/repository/sqlite"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/archive"
	"job-tracker-backend/pkg/audit"
	"job-tracker-backend/pkg/auth"
	"job-tracker-backend/pkg/database"
	"job-tracker-backend/pkg/ephemeral"
	"job-tracker-backend/pkg/logger"
	"job-tracker-backend/pkg/oauth"
	"job-tracker-backend/pkg/redis"
)

// @title           Job Tracker API
// @version         1.0
// @description     Personal job application tracker for LinkedIn accounts and guests.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.IsProduction())
	auditLog := audit.Init("job-tracker-backend", cfg.Environment)
	defer func() { _ = auditLog.Sync() }()
	logger.Log.Info("Starting job tracker backend", "port", cfg.Port, "db_driver", cfg.DBDriver)

	pingers := map[string]usecase.Pinger{}

	// 3. Setup Account Storage
	var accountRepo domain.JobRepository
	switch cfg.DBDriver {
	case "sqlite":
		db, err := database.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			logger.Log.Error("Failed to open sqlite database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := sqlite.NewJobRepository(db)
		if err := repo.Migrate(context.Background()); err != nil {
			logger.Log.Error("Failed to migrate sqlite database", "error", err)
			os.Exit(1)
		}
		accountRepo = repo
		pingers["database"] = db.PingContext
	case "postgres":
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		accountRepo = postgres.NewJobRepository(dbPool)
		pingers["database"] = dbPool.Ping
	default:
		logger.Log.Error("Unknown DB_DRIVER", "driver", cfg.DBDriver)
		os.Exit(1)
	}

	// 4. Setup Ephemeral Storage (guest data, one-shot flags)
	var store ephemeral.Store
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory store", "error", err)
		memory := ephemeral.NewMemoryStore()
		go sweepPeriodically(memory, time.Minute)
		store = memory
	} else {
		defer redis.Close()
		store = ephemeral.NewRedisStore(redis.Client(), "jobtracker:")
		pingers["redis"] = redis.HealthCheck
	}

	guestTTL := time.Duration(cfg.GuestTTLHours) * time.Hour
	guestRepo := guest.NewJobStore(store, guestTTL)
	jobStore := repository.NewJobStore(accountRepo, guestRepo)

	// 5. Setup Session Tokens
	var jwks *auth.Provider
	if cfg.SupabaseUrl != "" {
		jwks = auth.NewProvider(cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json")
	}
	verifier := auth.NewVerifier(cfg.SessionJWTSecret, jwks, time.Duration(cfg.SessionTTLHours)*time.Hour)

	var provider usecase.OAuthProvider
	if cfg.OAuthConfigured() {
		provider = oauth.NewLinkedIn(cfg.LinkedInClientID, cfg.LinkedInClientSecret, cfg.OAuthRedirectURL)
	} else {
		logger.Log.Warn("LinkedIn OAuth not configured - only guest sign-in is available")
	}

	// 6. Setup Export Archive
	var archiver usecase.Archiver
	archiveCfg := archive.Config{
		Provider:        archive.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		Bucket:          cfg.ExportBucket,
	}
	if archiveCfg.Configured() {
		uploader, err := archive.NewUploader(context.Background(), archiveCfg)
		if err != nil {
			logger.Log.Warn("Export archive disabled", "error", err)
		} else {
			archiver = uploader
		}
	}

	// 7. Setup UseCases
	jobUC := usecase.NewJobUsecase(jobStore)
	authUC := usecase.NewAuthUsecase(provider, verifier, store, guestRepo)
	profileUC := usecase.NewProfileUsecase(store, guestTTL)
	exportUC := usecase.NewExportUsecase(jobStore, archiver)
	healthUC := usecase.NewHealthUsecase(pingers)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:     jobUC,
		AuthUC:    authUC,
		ProfileUC: profileUC,
		ExportUC:  exportUC,
		HealthUC:  healthUC,
		Verifier:  middleware.SessionVerifier(verifier),
		Config:    cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func sweepPeriodically(store *ephemeral.MemoryStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		store.Sweep()
	}
}
