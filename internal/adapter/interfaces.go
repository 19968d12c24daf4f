// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the ForecastFlow server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) that manages the bearer token for
// authenticated requests and transparently refreshes an expired session:
// when a request comes back 401, at most one refresh runs regardless of how
// many requests hit the expiry concurrently, and each failed request is
// replayed once with the new token.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/forecastflow/forecastflow/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// SessionExpiryNotifier is implemented by adapters that can report a dead
// session: a 401 answer whose follow-up refresh also failed. The registered
// callback runs before the failed request returns to its caller, so the
// session owner destroys its state ahead of the caller observing the error.
type SessionExpiryNotifier interface {
	OnSessionExpired(fn func(context.Context))
}

// ServerAdapter defines transport-agnostic communication with the
// ForecastFlow server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetTokens stores the access and refresh tokens attached to all
	// subsequent authenticated requests. It should be called after a
	// successful Login and after restoring a persisted session.
	SetTokens(accessToken, refreshToken string)

	// Tokens returns the access and refresh tokens currently stored in the
	// adapter, or empty strings if none have been set yet.
	Tokens() (accessToken, refreshToken string)

	// Register sends a registration request. Registration does not log the
	// user in and stores no tokens. A taken username yields [ErrBadRequest].
	Register(ctx context.Context, req models.RegisterRequest) error

	// Login authenticates with the server. On success the returned token pair
	// is stored via SetTokens. Bad credentials yield [ErrUnauthorized].
	Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error)

	// Refresh exchanges the stored refresh token for a fresh pair and stores
	// it. Concurrent callers share a single in-flight exchange.
	Refresh(ctx context.Context) (models.TokenResponse, error)

	// Logout notifies the server that the session ended. The call is
	// best-effort; the server holds no session state to invalidate.
	Logout(ctx context.Context) error

	// CreateTask creates a task owned by the authenticated user.
	CreateTask(ctx context.Context, req models.TaskRequest) (models.Task, error)

	// GetTask fetches one task. A task that does not exist or belongs to
	// another user yields [ErrNotFound].
	GetTask(ctx context.Context, taskID int64) (models.Task, error)

	// ListTasks fetches the authenticated user's tasks, narrowed by filter.
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	// UpdateTask overwrites a task's mutable fields.
	UpdateTask(ctx context.Context, taskID int64, req models.TaskRequest) (models.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, taskID int64) error

	// UpdateUser updates the authenticated user's profile.
	UpdateUser(ctx context.Context, userID int64, req models.UserUpdateRequest) error
}
