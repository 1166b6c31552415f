package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/panaderia-reports/internal/api"
	"github.com/andresuchdata/panaderia-reports/internal/app"
	"github.com/andresuchdata/panaderia-reports/internal/cache"
	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/reports"
	"github.com/andresuchdata/panaderia-reports/internal/repository"
	"github.com/andresuchdata/panaderia-reports/internal/repository/postgres"
	"github.com/andresuchdata/panaderia-reports/internal/service"
	"github.com/andresuchdata/panaderia-reports/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	src, sourceName, err := app.NewSource(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to configure report source")
	}

	reportsCache, err := cache.NewReportsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, serving without cache")
		reportsCache = cache.NewNoopReportsCache()
	}

	reportService := service.NewReportService(src, sourceName, reportsCache,
		reports.WithIDStrategy(reports.ParseIDStrategy(cfg.App.IDStrategy)),
		reports.WithLogger(logger.Log),
	)
	if _, err := reportService.Reload(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Initial report load failed, starting with an empty dataset")
	}

	favoriteRepo := repository.NewMemoryFavoriteRepository()
	var snapshotService *service.SnapshotService
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to apply database schema")
		}
		favoriteRepo = postgres.NewFavoriteRepository(db)
		snapshotService = service.NewSnapshotService(reportService, postgres.NewReportRepository(db))
	}

	router := api.NewRouter(&api.Services{
		ReportService:   reportService,
		FavoriteService: service.NewFavoriteService(favoriteRepo, reportService),
		SnapshotService: snapshotService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("source", sourceName).Msg("Starting server")
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
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
