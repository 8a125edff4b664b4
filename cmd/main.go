package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/prono-scoreboard/config"
	"github.com/Dosada05/prono-scoreboard/db"
	"github.com/Dosada05/prono-scoreboard/fifaapi"
	"github.com/Dosada05/prono-scoreboard/handlers"
	"github.com/Dosada05/prono-scoreboard/live"
	"github.com/Dosada05/prono-scoreboard/repositories"
	api "github.com/Dosada05/prono-scoreboard/routes"
	"github.com/Dosada05/prono-scoreboard/services"
	"github.com/Dosada05/prono-scoreboard/storage"
	"github.com/Dosada05/prono-scoreboard/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title Prono Scoreboard API
// @version 1.0
// @description Live scoreboard of a group-stage prediction pool.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("predictions_source", string(cfg.PredictionsSource)),
		slog.Duration("refresh_interval", cfg.RefreshInterval),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bonuses, err := config.LoadBonuses(cfg.BonusFile)
	if err != nil {
		logger.Error("failed to load bonus table", slog.Any("error", err))
		os.Exit(1)
	}

	predictionRepo, closeRepo, err := newPredictionRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize prediction source", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeRepo()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(registry)

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()
	logger.Info("WebSocket Hub started")

	fifaClient := fifaapi.NewClient(cfg.FifaAPIURL, nil)
	scoreboardService := services.NewScoreboardService(
		fifaClient,
		predictionRepo,
		services.NewScorer(bonuses),
		wsHub,
		metrics,
		logger,
		services.ScoreboardServiceConfig{Concurrency: cfg.ScoringConcurrency},
	)
	authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecretKey)
	logger.Info("Services initialized", slog.Bool("admin_enabled", cfg.AdminEnabled()))

	// First computation runs in the background so the server answers 503
	// until it is done instead of refusing connections.
	go func() {
		if _, err := scoreboardService.Refresh(ctx); err != nil {
			logger.Error("initial scoreboard refresh failed", slog.Any("error", err))
		}
		if cfg.RefreshInterval > 0 {
			runScheduler(ctx, scoreboardService, cfg.RefreshInterval, logger)
		}
	}()

	router := chi.NewRouter()
	var jwtSecret []byte
	if cfg.AdminEnabled() {
		jwtSecret = []byte(cfg.JWTSecretKey)
	}
	api.SetupRoutes(router, api.Handlers{
		Scoreboard: handlers.NewScoreboardHandler(scoreboardService),
		Auth:       handlers.NewAuthHandler(authService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
		Health:     handlers.NewHealthHandler(scoreboardService),
	}, api.Options{
		JWTSecret:      jwtSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Gatherer:       registry,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// runScheduler refreshes the scoreboard every interval until ctx is done.
func runScheduler(ctx context.Context, svc services.ScoreboardService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("scoreboard refresh scheduler started", slog.Duration("interval", interval))

	for {
		select {
		case <-ticker.C:
			if _, err := svc.Refresh(ctx); err != nil {
				logger.Error("Scheduler: periodic refresh failed", slog.Any("error", err))
			}
		case <-ctx.Done():
			logger.Info("scoreboard refresh scheduler stopped")
			return
		}
	}
}

func newPredictionRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.PredictionRepository, func(), error) {
	noop := func() {}
	switch cfg.PredictionsSource {
	case config.PredictionsFromPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, noop, err
		}
		if err := db.EnsureSchema(ctx, dbConn); err != nil {
			dbConn.Close()
			return nil, noop, err
		}
		logger.Info("database connection established")
		return repositories.NewPostgresPredictionRepository(dbConn), func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}, nil

	case config.PredictionsFromR2:
		store, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Cloudflare R2 store initialized", slog.String("bucket", cfg.R2.BucketName))
		return repositories.NewBucketPredictionRepository(store, cfg.R2.PredictionsPrefix), noop, nil

	default:
		return repositories.NewFilePredictionRepository(cfg.PredictionsDir), noop, nil
	}
}
