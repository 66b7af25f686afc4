package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/deskalign/posture-api/docs"
	"github.com/deskalign/posture-api/internal/analysis"
	"github.com/deskalign/posture-api/internal/cache"
	"github.com/deskalign/posture-api/internal/config"
	"github.com/deskalign/posture-api/internal/content"
	"github.com/deskalign/posture-api/internal/errors"
	"github.com/deskalign/posture-api/internal/middleware"
	"github.com/deskalign/posture-api/internal/monitoring"
	"github.com/deskalign/posture-api/internal/ratelimit"
	"github.com/deskalign/posture-api/internal/security"
	"github.com/deskalign/posture-api/internal/types"
)

// @title Posture Analysis API
// @version 1.0
// @description Scores posture metrics and generates ergonomic feedback.
// @host localhost:8000
// @BasePath /

// server bundles the long-lived pieces the router and shutdown path share.
type server struct {
	cfg     *config.Config
	engine  *analysis.Engine
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
	cache   *cache.Cache
	redis   *ratelimit.RedisClient
	limiter *ratelimit.RateLimiter
	gzip    *middleware.GzipMiddleware
}

func newServer(cfg *config.Config) *server {
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	redisClient, err := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("Redis connection failed, rate limiting falls back to in-memory", "error", err)
	}

	limiterCfg := ratelimit.Config{
		IPLimitPerMin:      cfg.IPLimitPerMin,
		AnalyzeLimitPerMin: cfg.AnalyzeLimitPerMin,
		BurstMultiplier:    2,
	}

	gzipCfg := middleware.DefaultGzipConfig()
	gzipCfg.MinSize = cfg.GzipMinSize
	gzipCfg.Level = cfg.GzipLevel

	return &server{
		cfg:     cfg,
		engine:  analysis.NewEngine(),
		metrics: appMetrics,
		logger:  appLogger,
		cache:   cache.NewCache(cfg.CacheTTL),
		redis:   redisClient,
		limiter: ratelimit.NewRateLimiter(redisClient, limiterCfg, appMetrics),
		gzip:    middleware.NewGzipMiddleware(gzipCfg),
	}
}

// setupRouter wires middleware and routes. Split out of main so tests can
// exercise the full HTTP surface.
func (s *server) setupRouter() *gin.Engine {
	r := gin.New()

	r.Use(s.gzip.Handler())
	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))

	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(security.SecurityHeadersMiddleware())
	r.Use(security.RequestTimeout(s.cfg.RequestTimeout))
	r.Use(security.LimitBodySize(s.cfg.MaxBodyBytes))
	r.Use(security.ValidateContentType())

	// AllowOriginFunc instead of AllowOrigins: the list includes the literal
	// "null" origin that file:// pages send, which the static validator
	// rejects.
	allowed := make(map[string]struct{}, len(s.cfg.CORSOrigins))
	for _, o := range s.cfg.CORSOrigins {
		allowed[o] = struct{}{}
	}
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOriginFunc = func(origin string) bool {
		_, ok := allowed[origin]
		return ok
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization"}
	corsCfg.AllowCredentials = true
	r.Use(cors.New(corsCfg))

	r.Use(ratelimit.IPRateLimitMiddleware(s.limiter, s.metrics))
	r.Use(s.cache.Middleware(s.metrics))

	r.POST("/analyze_posture",
		ratelimit.EndpointRateLimitMiddleware(s.limiter, "/analyze_posture", s.cfg.AnalyzeLimitPerMin, s.metrics),
		s.handleAnalyzePosture)
	r.GET("/desk_setup", s.handleDeskSetup)
	r.GET("/", s.handleRoot)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.GET("/health", s.handleHealth)

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.metrics.GetStats())
	})
	r.GET("/metrics/prometheus", gin.WrapH(promhttp.HandlerFor(
		monitoring.PrometheusRegistry(),
		promhttp.HandlerOpts{},
	)))

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.cache.Stats())
	})
	r.GET("/ratelimit/stats", func(c *gin.Context) {
		stats := s.limiter.GetStats()
		stats["counters"] = s.metrics.GetRateLimitStats()
		c.JSON(http.StatusOK, stats)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// handleAnalyzePosture godoc
// @Summary Analyze posture metrics and return scored feedback
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body types.AnalyzeRequest true "Posture metrics and detection issues"
// @Success 200 {object} analysis.Feedback
// @Failure 400 {object} errors.AppError
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} errors.AppError
// @Router /analyze_posture [post]
func (s *server) handleAnalyzePosture(c *gin.Context) {
	start := time.Now()

	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.NewValidationError("Invalid request body", err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	feedback, err := s.engine.AnalyzePosture(analysis.MetricSet(req.Metrics), req.Issues)
	if err != nil {
		monitoring.RecordEngineFault()
		appErr := errors.NewInternalError("Posture analysis failed", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	if feedback.Score != nil {
		s.metrics.IncrementAnalysisScored()
		monitoring.RecordAnalysisScored(*feedback.Score)
	} else {
		s.metrics.IncrementAnalysisNoData()
		monitoring.RecordAnalysisNoData()
	}

	s.logger.AnalysisLogger(
		feedback.Score,
		feedback.Assessment,
		len(req.Metrics),
		len(req.Issues),
		len(feedback.Recommendations),
		time.Since(start),
		false,
	)

	c.JSON(http.StatusOK, feedback)
}

// handleDeskSetup godoc
// @Summary Get ergonomic desk setup tips
// @Tags content
// @Produce json
// @Success 200 {object} types.DeskSetupTips
// @Router /desk_setup [get]
func (s *server) handleDeskSetup(c *gin.Context) {
	c.JSON(http.StatusOK, types.DeskSetupTips{Tips: content.DeskSetupTips()})
}

func (s *server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Posture Assistant API is running!"})
}

// handleHealth godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (s *server) handleHealth(c *gin.Context) {
	health := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"metrics":   s.metrics.GetStats(),
	}

	if s.redis.IsEnabled() {
		if err := s.redis.HealthCheck(c.Request.Context()); err != nil {
			health["redis"] = "unreachable"
		} else {
			health["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, health)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	s := newServer(cfg)
	r := s.setupRouter()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.redis.Close(); err != nil {
		slog.Warn("Redis close failed", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
