// Package main provides the advisor API server entry point.
package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsrw-ise/advisor-go/internal/advisor"
	"github.com/hsrw-ise/advisor-go/internal/buildinfo"
	"github.com/hsrw-ise/advisor-go/internal/chat"
	"github.com/hsrw-ise/advisor-go/internal/config"
	"github.com/hsrw-ise/advisor-go/internal/genai"
	"github.com/hsrw-ise/advisor-go/internal/ingest"
	"github.com/hsrw-ise/advisor-go/internal/logger"
	"github.com/hsrw-ise/advisor-go/internal/metrics"
	"github.com/hsrw-ise/advisor-go/internal/ratelimit"
	"github.com/hsrw-ise/advisor-go/internal/sentry"
	"github.com/hsrw-ise/advisor-go/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxQuestionLength bounds chat input. Student questions are sentences, not
// documents.
const maxQuestionLength = 2000

// maxHistoryMessages bounds how much prior conversation a request may carry.
const maxHistoryMessages = 20

// server bundles the dependencies the HTTP handlers need.
type server struct {
	cfg     *config.Config
	log     *logger.Logger
	hot     *storage.HotSwapDB
	engine  *chat.Engine
	metrics *metrics.Metrics
	limiter *ratelimit.PerClientLimiter
}

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, s *server, registry *prometheus.Registry) {
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": s.cfg.ServerName,
			"status":  "ok",
			"version": buildinfo.Version,
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only checks that the process is running, never
	// dependencies.
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe - full dependency check.
	router.GET("/ready", s.handleReady)
	router.HEAD("/ready", s.handleReady)

	api := router.Group("/api")
	api.POST("/chat", rateLimitMiddleware(s.limiter), s.handleChat)
	api.GET("/modules", s.handleModules)
	api.GET("/schedule/:semester", s.handleSchedule)

	// Prometheus metrics endpoint
	router.GET("/metrics",
		metricsAuthMiddleware(s.cfg.MetricsAuthEnabled, s.cfg.MetricsUsername, s.cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}

func (s *server) handleReady(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.hot.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}
	if !s.engine.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "datasets not loaded",
		})
		return
	}

	db := s.hot.DB()
	moduleCount, _ := db.CountModules(ctx)
	entryCount, _ := db.CountEntries(ctx)

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"datasets": gin.H{
			"modules":          moduleCount,
			"schedule_entries": entryCount,
		},
	})
}

type chatRequest struct {
	Question string          `json:"question"`
	History  []genai.Message `json:"history"`
}

func (s *server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.RecordHTTPError("bad_request", c.FullPath())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	switch {
	case req.Question == "":
		s.metrics.RecordHTTPError("bad_request", c.FullPath())
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	case len(req.Question) > maxQuestionLength:
		s.metrics.RecordHTTPError("bad_request", c.FullPath())
		c.JSON(http.StatusBadRequest, gin.H{"error": "question too long"})
		return
	case len(req.History) > maxHistoryMessages:
		req.History = req.History[len(req.History)-maxHistoryMessages:]
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.LLMTimeout)
	defer cancel()

	answer, err := s.engine.Answer(ctx, req.Question, req.History)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.metrics.RecordHTTPError("timeout", c.FullPath())
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "answer generation timed out"})
			return
		}
		s.metrics.RecordHTTPError("internal", c.FullPath())
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate answer"})
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (s *server) handleModules(c *gin.Context) {
	filters := advisor.Filters{}
	if sem := c.Query("semester"); sem != "" {
		n, err := strconv.Atoi(sem)
		if err != nil || n < 1 || n > 7 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "semester must be 1-7"})
			return
		}
		filters.SemesterNum = n
	}
	switch strings.ToLower(c.Query("season")) {
	case "":
	case "winter":
		filters.Season = advisor.SeasonWinter
	case "summer":
		filters.Season = advisor.SeasonSummer
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "season must be winter or summer"})
		return
	}
	if filters.SemesterNum == 0 && filters.Season == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semester or season is required"})
		return
	}

	moduleMap, err := s.hot.DB().AllModules(c.Request.Context())
	if err != nil {
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load modules"})
		return
	}

	modules := advisor.ModulesFor(moduleMap, filters)
	c.JSON(http.StatusOK, gin.H{
		"semester": filters.SemesterNum,
		"season":   filters.Season,
		"count":    len(modules),
		"modules":  modules,
	})
}

func (s *server) handleSchedule(c *gin.Context) {
	semester, err := strconv.Atoi(c.Param("semester"))
	if err != nil || semester < 1 || semester > 7 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semester must be 1-7"})
		return
	}

	entries, err := s.hot.DB().AllEntries(c.Request.Context())
	if err != nil {
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load schedule"})
		return
	}

	active, season := advisor.IsSemesterActiveAt(semester, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"semester": semester,
		"season":   season,
		"active":   active,
		"days":     advisor.ScheduleForSemester(semester, entries),
		"types":    ingest.ClassTypes,
	})
}
