package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/salesdata/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres initializes a PostgreSQL connection using the provided configuration.
//
// Behavior:
//   - Uses cfg.Postgres.DSN() as data source name.
//   - Opens a database handle with sql.Open and sizes its pool.
//   - Immediately pings the database to validate connectivity.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
