package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/models"
)

// taskService is the concrete implementation of [TaskService]. Ownership is
// enforced here: a task that exists but belongs to another user is reported
// as [store.ErrTaskNotFound], never as a permission error, so the API does
// not leak which task IDs exist.
type taskService struct {
	taskRepository store.TaskRepository
	logger         *logger.Logger
}

// NewTaskService constructs a [TaskService] on top of the given repository.
func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{taskRepository: taskRepository, logger: logger}
}

// CreateTask persists a new task owned by userID.
func (s *taskService) CreateTask(ctx context.Context, userID int64, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	if task.Title == "" {
		log.Error().Int64("user_id", userID).Msg("invalid task data provided")
		return models.Task{}, ErrInvalidDataProvided
	}

	task.UserID = userID
	created, err := s.taskRepository.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("task creation ended with error")
		return models.Task{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return created, nil
}

// GetTask returns the task only when it exists and belongs to userID.
func (s *taskService) GetTask(ctx context.Context, userID, taskID int64) (models.Task, error) {
	return s.findOwnedTask(ctx, userID, taskID)
}

// ListTasks returns the tasks owned by userID, narrowed by filter.
func (s *taskService) ListTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	tasks, err := s.taskRepository.FindTasksByUserID(ctx, userID, filter)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("task listing ended with error")
		return nil, fmt.Errorf("task listing ended with error: %w", err)
	}

	return tasks, nil
}

// UpdateTask overwrites the mutable fields of an owned task and returns the
// stored result.
func (s *taskService) UpdateTask(ctx context.Context, userID int64, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	if task.Title == "" {
		log.Error().Int64("user_id", userID).Msg("invalid task data provided")
		return models.Task{}, ErrInvalidDataProvided
	}

	if _, err := s.findOwnedTask(ctx, userID, task.ID); err != nil {
		return models.Task{}, err
	}

	if err := s.taskRepository.UpdateTask(ctx, task); err != nil {
		log.Err(err).Int64("task_id", task.ID).Msg("task update ended with error")
		if errors.Is(err, store.ErrTaskNotFound) {
			return models.Task{}, store.ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("task update ended with error: %w", err)
	}

	return s.findOwnedTask(ctx, userID, task.ID)
}

// DeleteTask removes an owned task.
func (s *taskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.findOwnedTask(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskRepository.DeleteTask(ctx, taskID); err != nil {
		log.Err(err).Int64("task_id", taskID).Msg("task deletion ended with error")
		if errors.Is(err, store.ErrTaskNotFound) {
			return store.ErrTaskNotFound
		}
		return fmt.Errorf("task deletion ended with error: %w", err)
	}

	return nil
}

// findOwnedTask loads the task and verifies ownership. A task owned by
// another user is reported exactly like a missing one.
func (s *taskService) findOwnedTask(ctx context.Context, userID, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := s.taskRepository.FindTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return models.Task{}, store.ErrTaskNotFound
		}

		log.Err(err).Int64("task_id", taskID).Msg("task lookup ended with error")
		return models.Task{}, fmt.Errorf("task lookup ended with error: %w", err)
	}

	if task.UserID != userID {
		log.Info().Int64("task_id", taskID).Int64("user_id", userID).Msg("task access denied: not owner")
		return models.Task{}, store.ErrTaskNotFound
	}

	return task, nil
}
