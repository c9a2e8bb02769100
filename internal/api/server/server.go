package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/api/graphql"
	"github.com/feral-file/ff-raffle/internal/api/middleware"
	"github.com/feral-file/ff-raffle/internal/api/rest"
	"github.com/feral-file/ff-raffle/internal/api/shared/executor"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/ratelimit"
)

// Config holds the server configuration
type Config struct {
	Debug         bool
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	Auth          middleware.AuthConfig
	WebhookSecret string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	executor   executor.Executor
	limiter    ratelimit.Limiter
	httpServer *http.Server
}

// New creates a new API server. A nil limiter leaves the public routes unlimited.
func New(cfg Config, exec executor.Executor, limiter ratelimit.Limiter) *Server {
	return &Server{
		config:   cfg,
		executor: exec,
		limiter:  limiter,
	}
}

// Router builds the gin engine with all middleware and routes
func (s *Server) Router() (*gin.Engine, error) {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	routeCfg := rest.RouteConfig{
		Auth:          s.config.Auth,
		WebhookSecret: s.config.WebhookSecret,
	}
	if s.limiter != nil {
		routeCfg.RateLimit = middleware.RateLimit(s.limiter)
	}

	rest.SetupRoutes(router, rest.NewHandler(s.executor), routeCfg)

	gqlHandler, err := graphql.NewHandler(s.executor, s.config.Auth, adapter.NewJSON())
	if err != nil {
		return nil, fmt.Errorf("failed to create graphql handler: %w", err)
	}
	graphql.SetupRoutes(router, gqlHandler, routeCfg.RateLimit)

	return router, nil
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
