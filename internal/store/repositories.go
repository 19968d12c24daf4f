package store

import (
	"context"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Storages groups the server-side repositories into a single value that the
// service layer receives.
type Storages struct {
	UserRepository UserRepository
	TaskRepository TaskRepository

	db *DB
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewStorages initialises the server storage layer: it connects to PostgreSQL,
// applies the embedded migrations, and wires up the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		TaskRepository: NewTaskRepository(db, log),
		db:             db,
	}, nil
}
