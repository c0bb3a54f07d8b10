// Package main provides the advisor API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/hsrw-ise/advisor-go/internal/buildinfo"
	"github.com/hsrw-ise/advisor-go/internal/chat"
	"github.com/hsrw-ise/advisor-go/internal/config"
	"github.com/hsrw-ise/advisor-go/internal/genai"
	"github.com/hsrw-ise/advisor-go/internal/logger"
	"github.com/hsrw-ise/advisor-go/internal/metrics"
	"github.com/hsrw-ise/advisor-go/internal/r2client"
	"github.com/hsrw-ise/advisor-go/internal/ratelimit"
	"github.com/hsrw-ise/advisor-go/internal/sentry"
	"github.com/hsrw-ise/advisor-go/internal/snapshot"
	"github.com/hsrw-ise/advisor-go/internal/storage"
	"github.com/hsrw-ise/advisor-go/internal/timeouts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.WithField("version", buildinfo.Version).
		WithField("commit", buildinfo.Commit).
		Info("Starting advisor server")

	if cfg.SentryEnabled {
		release := cfg.SentryRelease
		if release == "" {
			release = buildinfo.Release()
		}
		if err := sentry.Initialize(sentry.Config{
			DSN:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			Release:     release,
			SampleRate:  cfg.SentrySampleRate,
		}); err != nil {
			log.WithError(err).Fatal("Failed to initialize Sentry")
		}
		defer sentry.Flush(timeouts.SentryFlush)
		log.Info("Sentry initialized")
	}

	// Create Prometheus registry with runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Resolve the database: download the latest snapshot from R2 when
	// configured, otherwise serve whatever the local ingest run produced.
	dbPath := cfg.SQLitePath()
	var manager *snapshot.Manager
	if cfg.R2Enabled {
		client, err := r2client.New(ctx, r2client.Config{
			AccountID:   cfg.R2AccountID,
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretAccessKey,
			BucketName:  cfg.R2BucketName,
		})
		if err != nil {
			log.WithError(err).Fatal("Failed to create R2 client")
		}
		manager = snapshot.New(client, snapshot.Config{
			SnapshotKey: cfg.R2SnapshotKey,
			TempDir:     cfg.DataDir,
		}, log)
		manager.SetMetrics(m)

		downloaded, etag, err := manager.Download(ctx, cfg.DataDir)
		switch {
		case errors.Is(err, snapshot.ErrNotFound):
			log.Warn("No snapshot in R2 yet, starting with local database")
		case err != nil:
			log.WithError(err).Fatal("Failed to download snapshot")
		default:
			dbPath = downloaded
			log.WithField("etag", etag).Info("Snapshot downloaded")
		}
	}

	hot, err := storage.NewHotSwapDB(dbPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() { _ = hot.Close() }()
	log.WithField("path", dbPath).Info("Database connected")

	// Build the LLM chain; a nil chain leaves the engine in data-only mode.
	engineOpts := []chat.Option{chat.WithMetrics(m), chat.WithTopK(cfg.RAGTopK)}
	var chain *genai.FallbackChat
	if cfg.LLMEnabled && cfg.HasChatProvider() {
		chain, err = genai.NewChatChain(ctx, chatConfig(cfg), m)
		if err != nil {
			log.WithError(err).Warn("Failed to build chat provider chain, answering without LLM")
		}
		if chain != nil {
			engineOpts = append(engineOpts, chat.WithGenerator(chain))
		}
	} else {
		log.Info("LLM disabled, answering from structured data only")
	}

	engine := chat.NewEngine(hot, log, engineOpts...)
	if err := engine.Reload(ctx); err != nil {
		// An empty database is survivable: readiness reports it and the
		// next snapshot swap fills it.
		log.WithError(err).Warn("Datasets not loaded yet")
	}

	if manager != nil {
		manager.StartPolling(ctx, hot, cfg.DataDir, func(swapCtx context.Context) {
			if err := engine.Reload(swapCtx); err != nil {
				log.WithError(err).Error("Failed to reload datasets after snapshot swap")
				sentry.CaptureException(err)
			}
		})
		defer manager.StopPolling()
	}

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log, m))
	if cfg.SentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	var limiter *ratelimit.PerClientLimiter
	if cfg.ChatRateLimitPerMin > 0 {
		limiter = ratelimit.NewPerClient(ratelimit.Config{
			Burst:         5,
			PerMinute:     float64(cfg.ChatRateLimitPerMin),
			CleanupPeriod: 5 * time.Minute,
		})
		limiter.OnDrop(func() { m.RecordHTTPError("rate_limited", "/api/chat") })
		defer limiter.Stop()
		log.WithField("per_minute", cfg.ChatRateLimitPerMin).Info("Chat rate limiting enabled")
	}

	s := &server{cfg: cfg, log: log, hot: hot, engine: engine, metrics: m, limiter: limiter}
	setupRoutes(router, s, registry)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  timeouts.HTTPRead,
		WriteTimeout: timeouts.HTTPWrite,
		IdleTimeout:  timeouts.HTTPIdle,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if chain != nil {
		if err := chain.Close(); err != nil {
			log.WithError(err).Error("Failed to close chat providers")
		}
	}

	log.Info("Server stopped")
}

// chatConfig maps environment configuration onto the provider chain.
func chatConfig(cfg *config.Config) genai.ChatConfig {
	providers := make([]genai.Provider, 0, len(cfg.LLMProviders))
	for _, p := range cfg.LLMProviders {
		providers = append(providers, genai.Provider(p))
	}
	return genai.ChatConfig{
		Providers: providers,
		Ollama: genai.ProviderConfig{
			BaseURL: cfg.OllamaBaseURL,
			Models:  cfg.OllamaChatModels,
		},
		Groq: genai.ProviderConfig{
			APIKey: cfg.GroqAPIKey,
			Models: cfg.GroqChatModels,
		},
		Gemini: genai.ProviderConfig{
			APIKey: cfg.GeminiAPIKey,
			Models: cfg.GeminiChatModels,
		},
		RetryConfig: genai.DefaultRetryConfig(),
	}
}
