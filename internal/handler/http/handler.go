package http

import (
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/service"
	"github.com/go-playground/validator/v10"
)

// Handler carries the dependencies of every HTTP route handler: the service
// layer, the structured logger, and the request validator applied to decoded
// DTOs at the boundary.
type Handler struct {
	services *service.Services
	validate *validator.Validate

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}
