package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/handler"
	"github.com/forecastflow/forecastflow/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the transport servers enabled by cfg. At least one
// transport address must be configured.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}

	if servers.httpServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger

	return servers, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}

func (s *server) run() error {
	if s.httpServer == nil {
		return errNoServersAreCreated
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
