package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/intentd/internal/artifact"
	"github.com/kailas-cloud/intentd/internal/config"
	dbRedis "github.com/kailas-cloud/intentd/internal/db/redis"
	logpkg "github.com/kailas-cloud/intentd/internal/logger"
	"github.com/kailas-cloud/intentd/internal/metrics"
	artifactrepo "github.com/kailas-cloud/intentd/internal/repository/artifact"
	chiTransport "github.com/kailas-cloud/intentd/internal/transport/chi"
	chatuc "github.com/kailas-cloud/intentd/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/intentd/internal/usecase/health"
	intentsuc "github.com/kailas-cloud/intentd/internal/usecase/intents"
	"github.com/kailas-cloud/intentd/internal/version"
)

// artifactSource is the read side of an artifact store.
type artifactSource interface {
	Load(ctx context.Context) (map[string][]byte, error)
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting intentd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("artifacts_driver", cfg.Artifacts.Driver),
	)

	ctx := context.Background()

	// Artifact source: local files or a shared Redis store.
	var source artifactSource
	var pinger healthuc.StorePinger
	switch cfg.Artifacts.Driver {
	case "file":
		source = artifactrepo.NewFileStore(cfg.Artifacts.ModelDir)
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Artifacts.Addrs,
			Password: cfg.Artifacts.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Artifacts.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		source = artifactrepo.NewKVStore(store, cfg.Artifacts.KeyPrefix)
		pinger = store
	default:
		logger.Fatal("Unknown artifacts driver", zap.String("driver", cfg.Artifacts.Driver))
	}

	// Register classification metrics explicitly (no init())
	metrics.RegisterClassificationMetrics()

	// Load the model bundle once; the service never serves without it.
	blobs, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load artifacts", zap.Error(err))
	}
	bundle, err := artifact.Decode(blobs)
	if err != nil {
		logger.Fatal("Failed to decode artifacts", zap.Error(err))
	}
	logger.Info("Model bundle loaded",
		zap.Strings("classes", bundle.Model.Classes()),
		zap.Int("vocabulary", bundle.Vectorizer.NumFeatures()),
		zap.String("fingerprint", bundle.Fingerprint),
	)

	// Create use case services
	chatSvc := chatuc.New(bundle.Vectorizer, bundle.Model, bundle.Catalog, logger).
		WithPolicy(cfg.Chat.ConfidenceThreshold, cfg.Chat.MaxMessageLen).
		WithFallbacks(cfg.Chat.LowConfidenceResponse, cfg.Chat.NoAnswerResponse)
	intentsSvc := intentsuc.New(bundle.Catalog)
	healthSvc := healthuc.New(newBundleChecker(bundle), pinger)

	// Create chi server
	server := chiTransport.NewServer(chatSvc, intentsSvc, healthSvc, cfg.Service.Name, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// bundleChecker implements health.ModelChecker over the loaded bundle.
type bundleChecker struct {
	bundle *artifact.Bundle
}

func newBundleChecker(bundle *artifact.Bundle) *bundleChecker {
	return &bundleChecker{bundle: bundle}
}

func (c *bundleChecker) Check(_ context.Context) error {
	if c.bundle == nil || len(c.bundle.Model.Classes()) == 0 {
		return errors.New("model bundle not loaded")
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
