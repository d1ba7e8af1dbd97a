// Package http exposes the console's backend-for-frontend API.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/finance-console/internal/application/service"
	"github.com/garyjia/finance-console/internal/auth"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	AdminRole      string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		AdminRole:    "admin",
	}
}

// Services bundles the application services the handlers call
type Services struct {
	Tasks     service.TaskService
	Invoices  service.InvoiceService
	Admin     service.AdminService
	Export    service.ExportService
	Dashboard service.DashboardService
	Tokens    TokenIssuer
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	decoder    *auth.Decoder
	logger     *zap.Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, decoder *auth.Decoder, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	if config.AdminRole == "" {
		config.AdminRole = "admin"
	}

	server := &Server{
		config:   config,
		router:   gin.New(),
		services: services,
		decoder:  decoder,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(corsMiddleware(s.config.AllowedOrigins))
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := NewHandlers(s.services, s.config.AdminRole, s.logger)

	s.router.GET("/health", h.HealthCheck)

	api := s.router.Group("/api")
	api.GET("/auth/token/:userType", h.RequestDevToken)

	authed := api.Group("")
	authed.Use(auth.Middleware(s.decoder, s.logger))
	{
		authed.GET("/me", h.Me)
		authed.GET("/dashboard", h.Dashboard)

		authed.GET("/tasks", h.ListTasks)
		authed.POST("/tasks/:id/actions", h.PerformTaskAction)
		authed.GET("/actions", h.ListActions)

		authed.GET("/invoices", h.ListInvoices)
		authed.POST("/invoices", h.CreateInvoice)
		authed.GET("/invoices/:id", h.GetInvoiceDetail)
		authed.GET("/invoices/:id/export", h.ExportInvoice)
		authed.PATCH("/invoices/:id/deal", h.UpdateDeal)
		authed.POST("/invoices/:id/deal/submit", h.SubmitDeal)

		authed.GET("/workflows/:id", h.GetWorkflow)
		authed.GET("/audit", h.ListAudit)
	}

	admin := authed.Group("/admin")
	admin.Use(auth.RequireRole(s.config.AdminRole))
	{
		admin.GET("/approval-rules", h.ListApprovalRules)
		admin.POST("/approval-rules", h.CreateApprovalRule)
		admin.DELETE("/approval-rules/:name", h.DeactivateApprovalRule)

		admin.GET("/pricing-rules", h.ListPricingRules)
		admin.POST("/pricing-rules", h.CreatePricingRule)
		admin.POST("/pricing-rules/:id/disable", h.DisablePricingRule)

		admin.GET("/permissions", h.ListPermissions)
		admin.GET("/roles", h.ListRoles)
		admin.POST("/roles", h.CreateRole)
		admin.PUT("/roles/:id", h.UpdateRole)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
