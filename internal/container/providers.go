// Package container provides dependency injection and lifecycle management
// for the finance console following Clean Architecture principles.
package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/finance-console/internal/application/service"
	"github.com/garyjia/finance-console/internal/auth"
	"github.com/garyjia/finance-console/internal/config"
	"github.com/garyjia/finance-console/internal/infrastructure/external/platform"
	"github.com/garyjia/finance-console/internal/infrastructure/persistence/repository"
	httpserver "github.com/garyjia/finance-console/internal/interfaces/http"
	"github.com/garyjia/finance-console/pkg/database"
)

// ProvideDatabase opens the action journal database and applies pending migrations.
func ProvideDatabase(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*database.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrator(db, logger).RunMigrations(ctx, database.Migrations()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// ProvidePlatformClient creates the invoice-financing API client.
func ProvidePlatformClient(cfg *config.PlatformConfig, logger *zap.Logger) (*platform.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("platform config is required")
	}

	client := platform.NewClient(platform.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	}, logger.Named("platform"))

	urls := client.BaseURLs()
	logger.Info("Platform client configured",
		zap.String("api_base", urls.API),
		zap.String("v1_base", urls.V1),
		zap.Float64("rate_limit", cfg.RateLimit))

	return client, nil
}

// ServiceDeps holds dependencies for creating application services.
type ServiceDeps struct {
	Platform *platform.Client
	Journal  *repository.ActionJournalRepository
	Export   *config.ExportConfig
	Logger   *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps ServiceDeps) (*ServiceBundle, error) {
	if deps.Platform == nil {
		return nil, fmt.Errorf("platform client is required")
	}
	if deps.Journal == nil {
		return nil, fmt.Errorf("action journal is required")
	}

	logger := &zapLoggerAdapter{logger: deps.Logger}

	invoices := service.NewInvoiceService(deps.Platform, platform.IsNotFound, logger)

	exportCfg := service.ExportConfig{}
	if deps.Export != nil {
		exportCfg = service.ExportConfig{
			CompanyName: deps.Export.CompanyName,
			Locale:      deps.Export.Locale,
		}
	}

	return &ServiceBundle{
		Task:      service.NewTaskService(deps.Platform, deps.Journal, logger),
		Invoice:   invoices,
		Admin:     service.NewAdminService(deps.Platform, logger),
		Export:    service.NewExportService(invoices, exportCfg, logger),
		Dashboard: service.NewDashboardService(deps.Platform, deps.Platform, logger),
	}, nil
}

// ProvideServer creates the HTTP server.
func ProvideServer(cfg *config.Config, services *ServiceBundle, tokens httpserver.TokenIssuer, logger *zap.Logger) *httpserver.Server {
	decoder := auth.NewDecoder(cfg.Auth.JWTSecret)
	if !decoder.Verifies() {
		logger.Warn("auth.jwt_secret is empty, bearer tokens are decoded without signature verification")
	}

	return httpserver.NewServer(httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AdminRole:      cfg.Auth.AdminRole,
	}, httpserver.Services{
		Tasks:     services.Task,
		Invoices:  services.Invoice,
		Admin:     services.Admin,
		Export:    services.Export,
		Dashboard: services.Dashboard,
		Tokens:    tokens,
	}, decoder, logger.Named("http"))
}
