package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forecastflow/forecastflow/internal/adapter"
	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/service"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/tui"
	"github.com/forecastflow/forecastflow/internal/workers"
)

// tokenRefreshInterval is how often the background worker rotates the token
// pair while the main loop is on screen.
const tokenRefreshInterval = 10 * time.Minute

// App is the terminal client application.
type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	logger   *logger.Logger
}

// NewApp builds the client from configuration: the SQLite session store, the
// HTTP server adapter, the client services, and the terminal UI on top.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	sessionStore, err := store.NewSessionStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create session store: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	services := service.NewClientServices(serverAdapter, sessionStore, log)

	ui, err := tui.New(services, log)
	if err != nil {
		return nil, fmt.Errorf("create terminal UI: %w", err)
	}

	return &App{services: services, tui: ui, logger: log}, nil
}

// Run drives the session lifecycle: restore a persisted session or walk the
// user through login, then hand over to the main loop. A logout returns to
// the login flow; quitting either program ends the run.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		if !a.services.SessionManager.Restore(ctx) {
			if err := a.tui.LoginFlow(ctx); err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}
		}

		if !a.services.SessionManager.IsAuthenticated() {
			// Login flow exited without a session, nothing left to show.
			return nil
		}

		refreshWorker := workers.NewTokenRefreshWorker(a.services.SessionManager, tokenRefreshInterval, a.logger)
		background := workers.NewWorkers(refreshWorker)
		background.Start(ctx)

		logout, err := a.tui.MainLoop(ctx)
		background.Stop()
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
	}
}
