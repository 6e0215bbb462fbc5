package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/landscan/zoneaudit/internal/config"
)

// Database wraps the pgx connection pool and provides database operations.
type Database struct {
	Pool *pgxpool.Pool
}

// NewPostgresPool creates a new PostgreSQL connection pool using pgx.
// It configures the pool based on the provided database configuration,
// tests the connection, and returns a Database instance.
func NewPostgresPool(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MinConns = int32(cfg.PoolMin)
	poolConfig.MaxConns = int32(cfg.PoolMax)

	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Second
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Fail fast rather than surfacing connection errors on first query.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{Pool: pool}, nil
}

// Ping checks if the database connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close gracefully closes the database connection pool.
// It waits for all connections to be returned to the pool before closing.
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Stats returns statistics about the connection pool.
func (db *Database) Stats() *pgxpool.Stat {
	if db.Pool == nil {
		return nil
	}
	return db.Pool.Stat()
}

// Migrate creates the properties table if it does not exist. The schema
// mirrors the fetched PropertyRecord fields so an analysis can run against
// previously persisted data without re-fetching.
func (db *Database) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS properties (
	parcel_id            TEXT PRIMARY KEY,
	address              TEXT NOT NULL DEFAULT '',
	owner                TEXT NOT NULL DEFAULT '',
	account              TEXT NOT NULL DEFAULT '',
	zoning               TEXT NOT NULL DEFAULT '',
	land_use_code        TEXT NOT NULL DEFAULT '',
	land_use_desc        TEXT NOT NULL DEFAULT '',
	total_value          DOUBLE PRECISION NOT NULL DEFAULT 0,
	land_value           DOUBLE PRECISION NOT NULL DEFAULT 0,
	parcel_area_acres    DOUBLE PRECISION NOT NULL DEFAULT 0,
	building_footprint_sqft DOUBLE PRECISION NOT NULL DEFAULT 0,
	living_area_sqft     DOUBLE PRECISION NOT NULL DEFAULT 0,
	fetched_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create properties table: %w", err)
	}
	return nil
}
