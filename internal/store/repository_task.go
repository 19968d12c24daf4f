package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/models"
)

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTask persists a new task and returns the canonical database
// representation including the server-assigned ID and CreatedAt.
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTask,
		task.Title, task.Description, task.LocationName, task.Latitude, task.Longitude,
		task.TaskTime, task.UserID, task.IsCompleted, task.Priority, task.Category, task.ReminderTime)

	created, err := scanTask(row)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error: insert failed")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindTaskByID retrieves a task by primary key regardless of owner; the
// ownership decision is the service layer's.
func (r *taskRepository) FindTaskByID(ctx context.Context, id int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findTaskByID, id)

	found, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}

		log.Err(err).Str("func", "*taskRepository.FindTaskByID").Msg("error: lookup failed")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindTasksByUserID lists the tasks owned by userID ordered by task time,
// optionally narrowed by the completed/category filters.
func (r *taskRepository) FindTasksByUserID(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTaskListQuery(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.FindTasksByUserID").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err = rows.Scan(&t.ID, &t.Title, &t.Description, &t.LocationName, &t.Latitude, &t.Longitude,
			&t.TaskTime, &t.UserID, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt,
			&t.Priority, &t.Category, &t.ReminderTime); err != nil {
			log.Err(err).Str("func", "*taskRepository.FindTasksByUserID").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

// UpdateTask overwrites the mutable fields of the task identified by task.ID
// and stamps updated_at via the dynamically built query.
func (r *taskRepository) UpdateTask(ctx context.Context, task models.Task) error {
	log := logger.FromContext(ctx)

	query, args, err := buildTaskUpdateQuery(task)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error: update failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// DeleteTask removes a task by primary key.
func (r *taskRepository) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteTask, id)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// scanTask reads one full task row from either a QueryRow result or an
// iterating rows cursor.
func scanTask(row *sql.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.LocationName, &t.Latitude, &t.Longitude,
		&t.TaskTime, &t.UserID, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt,
		&t.Priority, &t.Category, &t.ReminderTime)
	return t, err
}
