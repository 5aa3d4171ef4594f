package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/handlers"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/metrics"
)

// Server wires the HTTP router to the handlers and owns the listener
// lifecycle.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
	logger   *zap.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg *config.Config, h *handlers.Handlers, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.GinMiddleware())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		logger:   logger.Named("server"),
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/pricing/quote", s.handlers.Quote)
		v1.POST("/appointments/:id/complete", s.handlers.Complete)
		v1.POST("/discounts/validate", s.handlers.ValidateDiscount)

		v1.GET("/packages", s.handlers.Packages)
		v1.GET("/products", s.handlers.Products)
		v1.GET("/staff", s.handlers.Staff)

		v1.GET("/settings", s.handlers.GetSettings)
		v1.PUT("/settings/monthly-target", s.handlers.SetMonthlyTarget)
		v1.POST("/settings/closed-days", s.handlers.CloseDailyAccount)
	}
}

// Run starts the listener and blocks until it stops.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	s.logger.Info("Starting server", zap.String("addr", addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
