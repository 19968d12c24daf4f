package store

import (
	"context"

	"github.com/forecastflow/forecastflow/models"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (ID, CreatedAt). A duplicate username yields [ErrUsernameTaken].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername retrieves an account by its unique username.
	// An empty result yields [ErrNoUserFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID retrieves an account by its ID.
	// An empty result yields [ErrNoUserFound].
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// GetAllUsers lists every account.
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser overwrites username and email and, when the hash and salt
	// are non-empty, the stored credential. A missing account yields
	// [ErrNoUserFound]; a username collision yields [ErrUsernameTaken].
	UpdateUser(ctx context.Context, user models.User) error

	// DeleteUser removes an account. A missing account yields [ErrNoUserFound].
	DeleteUser(ctx context.Context, id int64) error
}

// TaskRepository is the data-access contract for tasks. Ownership checks live
// in the service layer; the repository exposes raw records.
type TaskRepository interface {
	// CreateTask persists a new task and returns it with server-assigned
	// fields (ID, CreatedAt).
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// FindTaskByID retrieves a task by its ID regardless of owner.
	// An empty result yields [ErrTaskNotFound].
	FindTaskByID(ctx context.Context, id int64) (models.Task, error)

	// FindTasksByUserID lists the tasks owned by userID, optionally narrowed
	// by filter.
	FindTasksByUserID(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)

	// UpdateTask overwrites the mutable fields of the task identified by
	// task.ID and stamps updated_at. A missing task yields [ErrTaskNotFound].
	UpdateTask(ctx context.Context, task models.Task) error

	// DeleteTask removes a task. A missing task yields [ErrTaskNotFound].
	DeleteTask(ctx context.Context, id int64) error
}
