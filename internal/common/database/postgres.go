package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scheme-finder/internal/common/config"

	_ "github.com/lib/pq"
)

type PostgresClient struct {
	DB *sql.DB
}

func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.DB
}

// schemaStatements create the tables the catalog source, the tracker and
// the citizen profile lookup read from. Each statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schemes (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		benefits           TEXT NOT NULL DEFAULT '',
		min_age            INTEGER NOT NULL,
		max_age            INTEGER NOT NULL,
		gender_eligibility TEXT NOT NULL DEFAULT 'Any',
		min_education      TEXT NOT NULL DEFAULT 'Any',
		area               TEXT NOT NULL DEFAULT 'Any',
		state              TEXT NOT NULL DEFAULT 'Any',
		target_groups      TEXT[] NOT NULL DEFAULT '{}',
		department         TEXT NOT NULL DEFAULT '',
		application_link   TEXT NOT NULL DEFAULT '',
		position           INTEGER NOT NULL DEFAULT 0,
		active             BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS citizen_profiles (
		id         TEXT PRIMARY KEY,
		age        INTEGER NOT NULL,
		gender     TEXT NOT NULL,
		education  TEXT NOT NULL,
		area       TEXT NOT NULL DEFAULT '',
		state      TEXT NOT NULL,
		categories TEXT[] NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tracked_applications (
		id                 UUID PRIMARY KEY,
		citizen_id         TEXT NOT NULL,
		scheme_name        TEXT NOT NULL,
		state              TEXT NOT NULL DEFAULT '',
		application_link   TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL,
		applied_date       TIMESTAMPTZ NOT NULL,
		last_updated       TIMESTAMPTZ NOT NULL,
		application_number TEXT NOT NULL DEFAULT '',
		notes              TEXT NOT NULL DEFAULT '',
		documents          TEXT[] NOT NULL DEFAULT '{}',
		next_steps         TEXT NOT NULL DEFAULT '',
		UNIQUE (citizen_id, scheme_name)
	)`,
}

// EnsureSchema creates missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
