package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/panaderia-reports/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB creates the shared connection pool from the service configuration.
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	var err error
	once.Do(func() {
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

		var db *sqlx.DB
		db, err = sqlx.Connect("postgres", connStr)
		if err != nil {
			return
		}
		dbInstance = wrap(db)
	})

	return dbInstance, err
}

// Open connects through the pgx driver using a connection URL, as the CLI does.
func Open(ctx context.Context, url string) (*DB, error) {
	db, err := sqlx.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return wrap(db), nil
}

func wrap(db *sqlx.DB) *DB {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{
		DB:  db,
		sem: semaphore.NewWeighted(10),
	}
}

// WithTx executes a function within a transaction
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx.Tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("could not rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS report_snapshots (
		id               TEXT NOT NULL,
		kind             TEXT NOT NULL,
		name             TEXT NOT NULL,
		summary          TEXT NOT NULL DEFAULT '',
		report_number    TEXT NOT NULL,
		year             INTEGER,
		month_number     INTEGER,
		month_name       TEXT NOT NULL DEFAULT '',
		date_key         TEXT,
		display_date     TEXT NOT NULL,
		primary_metric   DOUBLE PRECISION NOT NULL DEFAULT 0,
		secondary_metric DOUBLE PRECISION,
		position         INTEGER NOT NULL,
		details          JSONB NOT NULL,
		synced_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (id, kind)
	)`,
	`CREATE TABLE IF NOT EXISTS report_favorites (
		key        TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables used by the repositories.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not apply schema: %w", err)
		}
	}
	return nil
}
