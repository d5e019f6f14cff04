// backend-go/cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/alerting"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/api"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/cache"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/config"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/deferred"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/andresuchdata/tariff-risk/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.Setup(cfg.Server.LogLevel, cfg.Server.Mode, os.Stdout)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	source, closeSource := catalogSource(cfg)
	defer closeSource()

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, dashboard cache disabled")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	catalogService, err := service.NewCatalogService(ctx, source, dashboardCache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	notifier := alerting.NewNotifier(cfg.Alerts.Notifier, cfg.Alerts.KafkaBrokers, cfg.Alerts.KafkaTopic)
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Log.Error().Err(err).Msg("Failed to close alert notifier")
		}
	}()

	sessionService := service.NewSessionService(
		catalogService,
		notifier,
		deferred.RealScheduler{},
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		service.Delays{
			Search:   time.Duration(cfg.Session.SearchDelayMS) * time.Millisecond,
			KPI:      time.Duration(cfg.Session.KPIDelayMS) * time.Millisecond,
			Category: time.Duration(cfg.Session.CategoryDelayMS) * time.Millisecond,
			Modal:    time.Duration(cfg.Session.ModalDelayMS) * time.Millisecond,
		},
	)
	defer sessionService.Close()

	reportService := service.NewReportService(catalogService, time.Now)

	router := api.NewRouter(&api.Services{
		CatalogService: catalogService,
		SessionService: sessionService,
		ReportService:  reportService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("catalog", cfg.App.CatalogSource).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// catalogSource returns the configured catalog source and a cleanup func.
func catalogSource(cfg *config.Config) (catalog.Source, func()) {
	if cfg.App.CatalogSource != "postgres" {
		return catalog.StaticSource{}, func() {}
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	return catalog.RepositorySource{Repo: postgres.NewCatalogRepository(db)}, func() {
		if err := db.Close(); err != nil {
			logger.Log.Error().Err(err).Msg("Failed to close database")
		}
	}
}
