package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/adapters/events"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/waste_approval_app/internal/core/ports/services"
	"github.com/SscSPs/waste_approval_app/internal/core/services"
	"github.com/SscSPs/waste_approval_app/internal/handlers"
	"github.com/SscSPs/waste_approval_app/internal/middleware"
	"github.com/SscSPs/waste_approval_app/internal/platform/config"
	"github.com/SscSPs/waste_approval_app/internal/platform/ratelimit"
	"github.com/SscSPs/waste_approval_app/internal/repositories/database/gormsql"
	"github.com/SscSPs/waste_approval_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/waste_approval_app/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Waste Approval Backend API
// @version 1.0
// @description Multi-level approval workflow for factory waste entries.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return err
		}
	}

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, closeNotifier, err := openNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	rateLimiter, closeLimiter, err := ratelimit.NewLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	serviceContainer := services.NewServiceContainer(cfg, repos, notifier)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigins),
		middleware.RateLimit(rateLimiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			slog.String("port", cfg.Port),
			slog.String("store_backend", cfg.StoreBackend),
			slog.String("ladder_mode", string(cfg.LadderMode)))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the configured persistence backend.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendGorm:
		db, err := database.NewGormDB(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, cfg.IsProduction)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using gorm store backend")
		return gormsql.NewRepositoryProvider(db), func() { database.CloseGormDB(db) }, nil
	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using pgx store backend")
		return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
	}
}

// openNotifier connects to NATS when configured; otherwise events are dropped.
func openNotifier(cfg *config.Config, logger *slog.Logger) (portssvc.WorkflowNotifier, func(), error) {
	if cfg.NATSURL == "" {
		logger.Info("NATS_URL not set, workflow events will not be published")
		return events.NoopNotifier{}, func() {}, nil
	}
	notifier, closeFn, err := events.Connect(cfg.NATSURL, cfg.NATSSubjectRoot, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Publishing workflow events to NATS", slog.String("subject_root", cfg.NATSSubjectRoot))
	return notifier, closeFn, nil
}
