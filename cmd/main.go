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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/loscheesy/ordering/internal/cache"
	"github.com/loscheesy/ordering/internal/config"
	"github.com/loscheesy/ordering/internal/events"
	h "github.com/loscheesy/ordering/internal/http"
	"github.com/loscheesy/ordering/internal/logger"
	"github.com/loscheesy/ordering/internal/menu"
	"github.com/loscheesy/ordering/internal/receipt"
	"github.com/loscheesy/ordering/internal/session"
	"github.com/loscheesy/ordering/internal/store"
	"github.com/loscheesy/ordering/internal/submission"
)

// receiptBackend is what the Redis cache and its no-op stand-in both provide.
type receiptBackend interface {
	cache.ReceiptCache
	submission.FailureRecorder
	h.FailureLister
}

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	var backend receiptBackend = cache.NopCache{}
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Error("failed to connect to redis", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
			os.Exit(1)
		}
		backend = cache.NewRedisCache(redisClient, cfg.ReceiptTTL)
		log.Info("receipt cache enabled", slog.String("addr", cfg.RedisAddr))
	}

	intake := submission.NewHTTPIntake(cfg.IntakeTimeout, submission.BreakerSettings{
		ConsecutiveFailures: cfg.BreakerFailures,
		OpenTimeout:         cfg.BreakerOpenTimeout,
	})
	endpoints := submission.NewEndpointTable(cfg.Endpoints, cfg.DefaultEndpoint)
	orch := submission.NewOrchestrator(intake, endpoints, cfg.ConfirmationEndpoint).
		WithFailureRecorder(backend)

	var publisher *events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		orch.WithPublisher(publisher)
		log.Info("order events enabled", slog.String("topic", cfg.KafkaTopic))
	}
	if cfg.ConfirmationEndpoint == "" {
		log.Info("customer confirmations disabled")
	}

	sessions := store.NewMemoryStore(cfg.SessionTTL, func() *session.Controller {
		return session.NewController(orch, session.NewLogNotifier(log))
	})

	catalog := menu.Default()
	menuHandler := h.NewMenuHandler(catalog)
	sessionHandler := h.NewSessionHandler(sessions, catalog, receipt.NewService(backend), cfg.RequestTimeout)
	var failuresHandler *h.FailuresHandler
	if redisClient != nil {
		failuresHandler = h.NewFailuresHandler(backend)
	}

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.MaxBodyMiddleware(cfg.MaxRequestBodySize))

	h.RegisterRoutes(r, menuHandler, sessionHandler, failuresHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "ordering"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("ordering service starting", slog.String("port", cfg.HTTPPort), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", slog.Any("error", err))
	}

	waitFollowUps(ctx, orch, log)

	if err := sessions.Close(); err != nil {
		log.Error("failed to close session store", slog.Any("error", err))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("failed to close event publisher", slog.Any("error", err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("failed to close redis client", slog.Any("error", err))
		}
	}

	log.Info("server exited")
}

// waitFollowUps gives in-flight confirmations and events until ctx is done.
func waitFollowUps(ctx context.Context, orch *submission.Orchestrator, log *slog.Logger) {
	done := make(chan struct{})
	go func() {
		orch.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("shutdown timed out waiting for order follow-ups")
	}
}
