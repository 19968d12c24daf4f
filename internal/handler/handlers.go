package handler

import (
	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/handler/http"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/service"
)

// Handlers groups the transport handlers of the server. Only HTTP/REST is
// served; the struct keeps room for additional transports.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
