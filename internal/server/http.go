package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Str("func", "httpServer.RunServer").Msg("error: HTTP server ListenAndServe")
	}
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Str("func", "httpServer.Shutdown").Msg("error: HTTP server Shutdown")
	}
}
