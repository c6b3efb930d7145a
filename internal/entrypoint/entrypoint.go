package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/mrlokans/langportal/internal/analyzer"
	"github.com/mrlokans/langportal/internal/audit"
	"github.com/mrlokans/langportal/internal/auth"
	"github.com/mrlokans/langportal/internal/config"
	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/database/activities"
	auditrepo "github.com/mrlokans/langportal/internal/database/audit"
	"github.com/mrlokans/langportal/internal/database/dashboard"
	"github.com/mrlokans/langportal/internal/database/groups"
	"github.com/mrlokans/langportal/internal/database/reset"
	"github.com/mrlokans/langportal/internal/database/reviews"
	"github.com/mrlokans/langportal/internal/database/sessions"
	"github.com/mrlokans/langportal/internal/database/words"
	http_controllers "github.com/mrlokans/langportal/internal/http"
	"github.com/mrlokans/langportal/internal/importers"
	"github.com/mrlokans/langportal/internal/scheduler"
	"github.com/mrlokans/langportal/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewCORS builds the CORS policy for the single-page frontend.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID", "Accept", "Origin"},
		ExposedHeaders:   []string{http_controllers.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Background work stops before the server drains.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Language Portal v%s", version)

	streakLocation, err := cfg.StreakLocation()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path, database.WithLogLevel(database.ParseLogLevel(cfg.Database.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditLog := audit.NewService(auditrepo.NewRepository(db.DB))
	wordRepo := words.NewRepository(db.DB)
	groupRepo := groups.NewRepository(db.DB)
	sessionRepo := sessions.NewRepository(db.DB)

	routerCfg := http_controllers.RouterConfig{
		Words:           wordRepo,
		Groups:          groupRepo,
		Sessions:        sessionRepo,
		Activities:      activities.NewRepository(db.DB),
		Reviews:         reviews.NewRepository(db.DB),
		Dashboard:       dashboard.NewRepository(db.DB, dashboard.WithLocation(streakLocation)),
		Reset:           reset.NewRepository(db.DB),
		Database:        db,
		AuditLog:        auditLog,
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxImportBytes:  cfg.HTTP.MaxImportBodyBytes,
		Version:         version,
	}

	importerOpts := []importers.Option{importers.WithRecorder(auditLog)}
	if cfg.Analyzer.Enabled {
		a, err := analyzer.New()
		if err != nil {
			log.Printf("WARNING: Word analyzer unavailable: %v", err)
		} else {
			routerCfg.Analyzer = a
			importerOpts = append(importerOpts, importers.WithPartsFiller(a))
		}
	}
	importer := importers.NewVocabularyImporter(groupRepo, wordRepo, importerOpts...)
	routerCfg.Importer = importer

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewImportGroupWordsQueue(importer),
			tasks.NewCleanupAuditEventsQueue(auditLog),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		routerCfg.TaskQueue = taskClient

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	} else {
		log.Printf("Task queue disabled: imports run inline and audit cleanup is not scheduled")
	}

	if cfg.Admin.TokenHash != "" {
		guard := auth.NewAdminGuard(cfg.Admin.TokenHash, auth.RateLimitConfig{
			MaxAttempts:     cfg.Admin.MaxFailedAttempts,
			WindowDuration:  cfg.Admin.RateLimitWindow,
			LockoutDuration: cfg.Admin.LockoutDuration,
		})
		routerCfg.AdminGuard = guard.Handler()
		log.Printf("Admin token required for reset endpoints")
	} else {
		log.Printf("WARNING: ADMIN_TOKEN_HASH is not set. Reset endpoints are open to any client.")
	}

	router := http_controllers.NewRouter(routerCfg)
	handler := NewCORS(cfg.HTTP.CORSAllowedOrigins).Handler(router)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(handler, cfg, onShutdown)

	// Requests drained during Shutdown may still have queued audit writes.
	auditLog.Wait()
}
