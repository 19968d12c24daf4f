package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the shared *sql.DB handle used by all repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectPostgres opens a pgx-backed database/sql connection using the
// configured DSN, tunes the pool, and verifies connectivity with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{DB: conn, logger: log}, nil
}

// Migrate applies the embedded goose migrations to the wrapped database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// postgresError returns the PostgreSQL error code of err, or an empty string
// when err did not originate from the driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
