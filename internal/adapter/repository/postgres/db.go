package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB opens and pings a connection pool
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=fipify sslmode=disable"
func NewDB(ctx context.Context, connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS valuation_records (
	id                       UUID PRIMARY KEY,
	brand                    TEXT NOT NULL,
	model                    TEXT NOT NULL,
	model_year               TEXT NOT NULL,
	fuel_type                TEXT NOT NULL,
	reference_code           TEXT NOT NULL,
	reference_month          TEXT NOT NULL,
	current_value            NUMERIC(14, 2) NOT NULL CHECK (current_value > 0),
	annual_depreciation_rate NUMERIC(5, 2) NOT NULL CHECK (annual_depreciation_rate BETWEEN 0 AND 100),
	created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate creates the tables the repositories need, if missing
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
