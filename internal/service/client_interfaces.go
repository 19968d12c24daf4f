package service

import (
	"context"

	"github.com/forecastflow/forecastflow/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SessionManager owns the client session: it logs in and out against the
// server, keeps the token pair in memory, and persists the session across
// program runs through the local session store.
//
// Login, Logout, and RefreshToken report success as a boolean; transport and
// server failures are logged, never surfaced as errors, so the UI only has to
// branch on the outcome.
type SessionManager interface {
	// Restore loads a previously persisted session, if any, and primes the
	// server adapter with its tokens. Returns true when a session was found.
	Restore(ctx context.Context) bool

	// Register creates a new account. A taken username yields
	// [store.ErrUsernameTaken]; registration does not log the user in.
	Register(ctx context.Context, username, email, password string) error

	// Login authenticates with the server and persists the resulting session.
	// Returns false on bad credentials or any transport failure.
	Login(ctx context.Context, username, password string) bool

	// Logout ends the session. The server call is best-effort; the local
	// session is cleared regardless. Returns false only when the server call
	// failed.
	Logout(ctx context.Context) bool

	// RefreshToken exchanges the stored refresh token for a fresh pair and
	// persists it. On failure the session is cleared and false is returned.
	RefreshToken(ctx context.Context) bool

	// IsAuthenticated reports whether a session is currently held. It is a
	// pure read with no server round-trip.
	IsAuthenticated() bool

	// Session returns a copy of the current session.
	Session() models.Session
}

// ClientTaskService is the client-side contract for managing tasks through
// the server adapter, with transport errors translated into the service
// sentinel errors.
type ClientTaskService interface {
	Create(ctx context.Context, req models.TaskRequest) (models.Task, error)
	Get(ctx context.Context, taskID int64) (models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, taskID int64, req models.TaskRequest) (models.Task, error)
	Delete(ctx context.Context, taskID int64) error
}
