package service

import (
	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/store"
)

// Services groups the server-side services into a single value that the
// handler layer receives.
type Services struct {
	AuthService AuthService
	UserService UserService
	TaskService TaskService
}

// NewServices wires every service to its repositories and configuration.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.Auth, logger),
		UserService: NewUserService(storages.UserRepository, logger),
		TaskService: NewTaskService(storages.TaskRepository, logger),
	}
}
