package service

import (
	"context"

	"github.com/forecastflow/forecastflow/internal/adapter"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/models"
)

// clientTaskService is the concrete implementation of [ClientTaskService].
// It is a thin layer over the server adapter that translates transport errors
// into service sentinel errors.
type clientTaskService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

// NewClientTaskService constructs a [ClientTaskService].
func NewClientTaskService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientTaskService {
	return &clientTaskService{adapter: serverAdapter, logger: logger}
}

func (s *clientTaskService) Create(ctx context.Context, req models.TaskRequest) (models.Task, error) {
	task, err := s.adapter.CreateTask(ctx, req)
	if err != nil {
		s.logger.Err(err).Msg("task creation on server failed")
		return models.Task{}, mapAdapterError(err)
	}
	return task, nil
}

func (s *clientTaskService) Get(ctx context.Context, taskID int64) (models.Task, error) {
	task, err := s.adapter.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, mapAdapterError(err)
	}
	return task, nil
}

func (s *clientTaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := s.adapter.ListTasks(ctx, filter)
	if err != nil {
		s.logger.Err(err).Msg("task listing on server failed")
		return nil, mapAdapterError(err)
	}
	return tasks, nil
}

func (s *clientTaskService) Update(ctx context.Context, taskID int64, req models.TaskRequest) (models.Task, error) {
	task, err := s.adapter.UpdateTask(ctx, taskID, req)
	if err != nil {
		s.logger.Err(err).Msg("task update on server failed")
		return models.Task{}, mapAdapterError(err)
	}
	return task, nil
}

func (s *clientTaskService) Delete(ctx context.Context, taskID int64) error {
	if err := s.adapter.DeleteTask(ctx, taskID); err != nil {
		s.logger.Err(err).Msg("task deletion on server failed")
		return mapAdapterError(err)
	}
	return nil
}
