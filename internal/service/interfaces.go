package service

import (
	"context"

	"github.com/forecastflow/forecastflow/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	// RegisterUser creates a new account from the given credentials. A taken
	// username yields [store.ErrUsernameTaken]; registration does not log the
	// user in.
	RegisterUser(ctx context.Context, username, email, password string) (models.User, error)

	// Login verifies the credentials and returns the account. An unknown
	// username and a wrong password both yield [ErrInvalidCredentials].
	Login(ctx context.Context, username, password string) (models.User, error)

	// CreateToken issues a signed access token for the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// CreateRefreshToken issues a signed refresh token for the user.
	CreateRefreshToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates an access token string. Any validation failure
	// yields [ErrTokenIsExpiredOrInvalid].
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Refresh exchanges a valid refresh token for a fresh access/refresh pair.
	// An invalid token or an inactive account yields
	// [ErrTokenIsExpiredOrInvalid].
	Refresh(ctx context.Context, refreshTokenString string) (access models.Token, refresh models.Token, err error)
}

// UserService exposes account management on top of the user repository.
type UserService interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser overwrites username and email and, when newPassword is
	// non-empty, rehashes the credential.
	UpdateUser(ctx context.Context, id int64, username, email, newPassword string) error
	DeleteUser(ctx context.Context, id int64) error
}

// TaskService owns the task lifecycle. Every operation is scoped to the
// requesting user: a task owned by someone else is indistinguishable from a
// missing one.
type TaskService interface {
	CreateTask(ctx context.Context, userID int64, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (models.Task, error)
	ListTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, userID int64, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}
