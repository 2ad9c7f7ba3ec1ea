package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/avikram/studysync/internal/api/http"
	"github.com/avikram/studysync/internal/api/middleware"
	"github.com/avikram/studysync/internal/domain/catalog"
	"github.com/avikram/studysync/internal/infrastructure/config"
	"github.com/avikram/studysync/internal/infrastructure/logging"
	"github.com/avikram/studysync/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router  *gin.Engine
	catalog *catalog.Manager
	repo    *catalog.SQLiteRepository
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New creates a server instance backed by a SQLite session catalog
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing StudySync server",
		zap.String("port", cfg.Server.Port),
		zap.String("data_dir", cfg.Storage.DataDir),
	)

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)

	repo, err := catalog.NewSQLiteRepository(filepath.Join(cfg.Storage.DataDir, "catalog.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open session catalog: %w", err)
	}

	cat, err := catalog.NewManager(context.Background(), repo)
	if err != nil {
		repo.Close()
		return nil, err
	}
	cat.WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(cat, logger)
	RegisterRoutes(router, handlers)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		catalog: cat,
		repo:    repo,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// RegisterRoutes attaches the session API to a router group
func RegisterRoutes(router *gin.Engine, handlers *apihttp.Handlers) {
	router.GET("/health", handlers.Health)

	api := router.Group("/api")
	api.GET("/getSession", handlers.ListSessions)
	api.POST("/createSession", handlers.CreateSession)
	api.PUT("/:id", handlers.UpdateSession)
	api.DELETE("/delete/:id", handlers.DeleteSession)
	api.PATCH("/toggle/:id", handlers.ToggleSession)
	api.PATCH("/mark/:id", handlers.MarkSession)
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close releases server resources
func (s *Server) Close() error {
	s.logger.Info("Shutting down server")
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("failed to close catalog repository: %w", err)
	}
	return nil
}
