package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/andresuchdata/panaderia-reports/internal/app"
	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/reports"
	"github.com/andresuchdata/panaderia-reports/internal/repository/postgres"
	"github.com/andresuchdata/panaderia-reports/internal/service"
	"github.com/andresuchdata/panaderia-reports/pkg/logger"
	"github.com/urfave/cli/v2"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.Open(c.Context, c.String("db-url"))
	if err != nil {
		return err
	}
	if err := db.Migrate(c.Context); err != nil {
		db.Close()
		return err
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

// reportService builds a service over the source selected by the global flags and loads it.
func reportService(c *cli.Context) (*service.ReportService, error) {
	cfg := *config.Load()
	cfg.App.Source = c.String("source")
	cfg.App.DataDir = c.String("data-dir")

	src, name, err := app.NewSource(c.Context, &cfg)
	if err != nil {
		return nil, err
	}

	svc := service.NewReportService(src, name, nil,
		reports.WithIDStrategy(reports.ParseIDStrategy(c.String("id-strategy"))),
		reports.WithLogger(logger.Log),
	)
	if _, err := svc.Reload(c.Context); err != nil {
		return nil, err
	}
	return svc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	cfg := config.Load()

	cliApp := &cli.App{
		Name:  "reports",
		Usage: "Normalize and inspect bakery business reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Where raw reports are read from: bundled, file, s3 or drive",
				Value:   cfg.App.Source,
				EnvVars: []string{"APP_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory containing daily, monthly and material report files",
				Value:   cfg.App.DataDir,
				EnvVars: []string{"APP_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:  "id-strategy",
				Usage: "How ids are synthesized for reports without one: deterministic or random",
				Value: cfg.App.IDStrategy,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level",
				Value: "warn",
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "normalize",
				Usage:  "Print the normalized collections as JSON",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "all-only", Usage: "Print only the unified collection"}},
				Action: runNormalize,
			},
			{
				Name:   "years",
				Usage:  "List the years with valid reports, newest first",
				Action: runYears,
			},
			{
				Name:  "chart",
				Usage: "Print the monthly chart series for a year",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Usage: "Year to chart, defaults to the newest"},
					&cli.StringFlag{Name: "view", Usage: "sales or rawMaterial", Value: "sales"},
				},
				Action: runChart,
			},
			{
				Name:   "stats",
				Usage:  "Print dashboard statistics",
				Action: runStats,
			},
			{
				Name:   "sync",
				Usage:  "Store the unified collection in Postgres",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSync,
			},
			{
				Name:   "push",
				Usage:  "Upload the local data directory to object storage",
				Action: runPush,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("reports command failed")
	}
}

func runNormalize(c *cli.Context) error {
	svc, err := reportService(c)
	if err != nil {
		return err
	}
	if c.Bool("all-only") {
		return writeJSON(c.App.Writer, svc.Collections().All)
	}
	return writeJSON(c.App.Writer, svc.Collections())
}

func runYears(c *cli.Context) error {
	svc, err := reportService(c)
	if err != nil {
		return err
	}
	for _, year := range svc.AvailableYears() {
		fmt.Fprintln(c.App.Writer, year)
	}
	return nil
}

func runChart(c *cli.Context) error {
	svc, err := reportService(c)
	if err != nil {
		return err
	}

	year := c.Int("year")
	if year == 0 {
		years := svc.AvailableYears()
		if len(years) == 0 {
			return fmt.Errorf("no reports available")
		}
		year = years[0]
	}
	return writeJSON(c.App.Writer, svc.ChartSeries(c.Context, year, domain.ChartView(c.String("view"))))
}

func runStats(c *cli.Context) error {
	svc, err := reportService(c)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, svc.Stats(c.Context))
}

func runSync(c *cli.Context) error {
	db, ok := c.Context.Value(dbKey).(*postgres.DB)
	if !ok {
		return fmt.Errorf("database not initialized")
	}

	svc, err := reportService(c)
	if err != nil {
		return err
	}

	result, err := service.NewSnapshotService(svc, postgres.NewReportRepository(db)).Sync(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, result)
}
