package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/drive"
	"github.com/andresuchdata/panaderia-reports/internal/reports"
	"github.com/andresuchdata/panaderia-reports/internal/repository/postgres"
	"github.com/andresuchdata/panaderia-reports/internal/service"
	"github.com/andresuchdata/panaderia-reports/pkg/logger"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	ctx := context.Background()

	driveService, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize Google Drive service")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to apply database schema")
	}

	driveSource := drive.NewSource(driveService, cfg.Drive.FolderID, cfg.Drive.FolderPath)
	reportService := service.NewReportService(driveSource, "drive", nil,
		reports.WithIDStrategy(reports.ParseIDStrategy(cfg.App.IDStrategy)),
		reports.WithLogger(logger.Log),
	)
	snapshots := service.NewSnapshotService(reportService, postgres.NewReportRepository(db))

	r := mux.NewRouter()
	drive.NewHandler(driveService, snapshots).RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	logger.Log.Info().Str("addr", addr).Msg("Drive import server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatal().Err(err).Msg("Drive import server stopped")
	}
}
