// Package http provides the HTTP and WebSocket surface of the recommendation
// service: the REST API, the streaming tier endpoint, health probes, and the
// Prometheus scrape route.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealforge/v1/internal/application/knowledge"
	memoryapp "github.com/mealforge/v1/internal/application/memory"
	personaapp "github.com/mealforge/v1/internal/application/persona"
	"github.com/mealforge/v1/internal/application/recommend"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wires the application services behind Gin.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *gin.Engine
	server *http.Server

	orchestrator *recommend.Orchestrator
	generator    *recommend.Generator
	prewarmer    *recommend.PreWarmer
	personas     *personaapp.Service
	contexts     *memoryapp.Service
	graph        *knowledge.Service
	tracker      *monitoring.LatencyTracker
}

// NewServer builds the HTTP server and registers all routes.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	orchestrator *recommend.Orchestrator,
	generator *recommend.Generator,
	prewarmer *recommend.PreWarmer,
	personas *personaapp.Service,
	contexts *memoryapp.Service,
	graph *knowledge.Service,
	tracker *monitoring.LatencyTracker,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:          cfg,
		logger:       logger.Named("http"),
		orchestrator: orchestrator,
		generator:    generator,
		prewarmer:    prewarmer,
		personas:     personas,
		contexts:     contexts,
		graph:        graph,
		tracker:      tracker,
	}

	s.engine = s.setupRouter()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/health", s.handleHealth)
	if s.cfg.Monitoring.Enabled {
		r.GET(s.cfg.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api/v1")
	{
		api.POST("/recommendations", s.handleRecommend)
		api.GET("/recommendations/stream", s.handleStream)

		api.POST("/users/onboard", s.handleOnboard)
		api.GET("/users/:userId/prewarm", s.handlePreWarmStatus)

		api.POST("/sessions/events", s.handleSessionEvent)
		api.POST("/sessions/:userId/condense", s.handleCondense)
		api.GET("/sessions/:userId", s.handleSessionInfo)

		api.GET("/ingredients/:name", s.handleIngredient)

		api.GET("/metrics/report", s.handleMetricsReport)
		api.POST("/metrics/reset", s.handleMetricsReset)
	}
	return r
}

// requestLogger logs each request with latency and status.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Start begins serving. It blocks until the listener fails.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
