package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rrens/mock-analyst/internal/api"
	"github.com/Rrens/mock-analyst/internal/artifact"
	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/Rrens/mock-analyst/internal/logging"
	"github.com/Rrens/mock-analyst/internal/metrics"
	"github.com/Rrens/mock-analyst/internal/progress"
	"github.com/Rrens/mock-analyst/internal/repository"
	"github.com/Rrens/mock-analyst/internal/repository/memory"
	"github.com/Rrens/mock-analyst/internal/repository/redis"
	"github.com/Rrens/mock-analyst/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logCloser.Close()

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("progress_backend", cfg.Progress.Backend).
		Msg("Starting Mock Analyst API server")

	ctx := context.Background()

	mirror, err := repository.OpenMirror(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Progress.Backend).Msg("Failed to open progress store")
	}
	defer mirror.Close(context.Background())

	// Stores
	notifications := memory.NewNotificationStore()
	sessions := memory.NewSessionStore(notifications)
	channel := progress.NewChannel(mirror.ProgressMirror, progress.Options{MaxEvents: cfg.Progress.MaxEvents})
	defer channel.Close()

	// Services
	queryService := service.NewQueryService(sessions, channel, artifact.NewGenerator(), cfg.Simulation)
	sessionService := service.NewSessionService(sessions, notifications, channel)
	uploadService, err := service.NewUploadService(memory.NewUploadStore(), cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize uploads")
	}

	deps := api.Dependencies{
		QueryService:   queryService,
		SessionService: sessionService,
		UploadService:  uploadService,
		Progress:       channel,
		Ready:          mirror.Ping,
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		deps.RateLimiter = redis.NewRateLimiter(
			redisClient,
			"query",
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(cfg, deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := queryService.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Abandoning in-flight analyses")
	}

	log.Info().Msg("Server stopped")
}
