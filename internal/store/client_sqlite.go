package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/models"
)

// The session table holds at most one row, keyed by a fixed ID.
const sessionSchema = `CREATE TABLE IF NOT EXISTS session (
    session_id    INTEGER PRIMARY KEY CHECK (session_id = 1),
    token         TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    user_id       INTEGER NOT NULL,
    username      TEXT NOT NULL,
    email         TEXT NOT NULL,
    updated_at    TIMESTAMP NOT NULL
);`

const (
	saveSession = `INSERT INTO session (session_id, token, refresh_token, user_id, username, email, updated_at)
    VALUES (1, $1, $2, $3, $4, $5, $6)
    ON CONFLICT (session_id) DO UPDATE SET
        token = excluded.token,
        refresh_token = excluded.refresh_token,
        user_id = excluded.user_id,
        username = excluded.username,
        email = excluded.email,
        updated_at = excluded.updated_at;`

	loadSession = `SELECT token, refresh_token, user_id, username, email, updated_at
    FROM session
    WHERE session_id = 1;`

	clearSession = `DELETE FROM session;`
)

// sqliteSessionStore is the SQLite-backed implementation of [SessionStore].
type sqliteSessionStore struct {
	logger *logger.Logger
	db     *sql.DB
}

// NewSessionStore opens the local SQLite database at the configured path,
// creating the file and schema when absent, and returns a [SessionStore]
// backed by it.
func NewSessionStore(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (SessionStore, error) {
	if err := createLocalDBFileIfNotExists(cfg.SessionDBPath); err != nil {
		log.Err(err).Str("func", "NewSessionStore").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.SessionDBPath)
	if err != nil {
		log.Err(err).Str("func", "NewSessionStore").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSessionStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, sessionSchema); err != nil {
		log.Err(err).Str("func", "NewSessionStore").Msg("error creating session schema")
		return nil, fmt.Errorf("error creating session schema: %w", err)
	}
	log.Debug().Str("func", "NewSessionStore").Msg("connected to local database successfully")

	return &sqliteSessionStore{db: conn, logger: log}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}

// SaveSession upserts the single stored session row.
func (s *sqliteSessionStore) SaveSession(ctx context.Context, session models.Session) error {
	updatedAt := session.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, saveSession,
		session.Token, session.RefreshToken,
		session.User.ID, session.User.Username, session.User.Email, updatedAt)
	if err != nil {
		s.logger.Err(err).Str("func", "*sqliteSessionStore.SaveSession").Msg("error: save failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// LoadSession reads the stored session row.
func (s *sqliteSessionStore) LoadSession(ctx context.Context) (models.Session, error) {
	var session models.Session
	row := s.db.QueryRowContext(ctx, loadSession)

	err := row.Scan(&session.Token, &session.RefreshToken,
		&session.User.ID, &session.User.Username, &session.User.Email, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrLocalSessionNotFound
		}

		s.logger.Err(err).Str("func", "*sqliteSessionStore.LoadSession").Msg("error: load failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// ClearSession removes the stored session row if present.
func (s *sqliteSessionStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, clearSession); err != nil {
		s.logger.Err(err).Str("func", "*sqliteSessionStore.ClearSession").Msg("error: clear failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
