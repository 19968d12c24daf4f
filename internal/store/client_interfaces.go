package store

import (
	"context"

	"github.com/forecastflow/forecastflow/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionStore persists the client session between program runs so that a
// restart does not force a new login.
type SessionStore interface {
	// SaveSession overwrites the stored session with the given one.
	SaveSession(ctx context.Context, session models.Session) error

	// LoadSession returns the stored session. An empty store yields
	// [ErrLocalSessionNotFound].
	LoadSession(ctx context.Context) (models.Session, error)

	// ClearSession removes the stored session. Clearing an empty store is not
	// an error.
	ClearSession(ctx context.Context) error
}
