package main

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/api"
	v1 "github.com/billfold/billfold/internal/api/v1"
	"github.com/billfold/billfold/internal/cache"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/kvstore"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/repository"
	"github.com/billfold/billfold/internal/sentry"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// @title Billfold API
// @version 1.0
// @description Invoicing and receivables reporting service
// @BasePath /v1
// @schemes http https

func init() {
	// All dates and windows are computed in UTC
	time.Local = time.UTC
}

func main() {
	// Local overrides; absent in production
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// Record store
			kvstore.NewStore,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewInvoiceItemRepository,
			repository.NewResourceRepository,
			repository.NewCustomerRepository,
			repository.NewSettingsRepository,

			// Services
			service.NewServiceParams,
			service.NewInvoiceService,
			service.NewReportingService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			initValidator,
			sentry.RegisterHooks,
			startServer,
		),
	)

	app.Run()
}

func initValidator() {
	validator.NewValidator()
}

func provideHandlers(
	log *logger.Logger,
	invoiceService service.InvoiceService,
	reportingService service.ReportingService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(log),
		Invoice: v1.NewInvoiceHandler(invoiceService, log),
		Report:  v1.NewReportHandler(reportingService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
