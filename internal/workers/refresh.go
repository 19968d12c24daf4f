// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/service"
)

// TokenRefreshWorker periodically rotates the session token pair in the
// background so that an idle client does not run into an expired access
// token on its next request. A refresh failure is not an error condition
// here: the session manager clears the session and the next UI action sends
// the user back to the login flow.
type TokenRefreshWorker struct {
	sessions service.SessionManager
	interval time.Duration
	logger   *logger.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewTokenRefreshWorker(sessions service.SessionManager, interval time.Duration, logger *logger.Logger) *TokenRefreshWorker {
	return &TokenRefreshWorker{
		sessions: sessions,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start implements [Worker]. It launches the refresh loop in a goroutine and
// returns immediately.
func (w *TokenRefreshWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop implements [Worker]. It signals the loop to exit and waits for it.
func (w *TokenRefreshWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	<-w.done
}

func (w *TokenRefreshWorker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			if !w.sessions.IsAuthenticated() {
				continue
			}
			if ok := w.sessions.RefreshToken(ctx); !ok {
				w.logger.Info().Str("func", "TokenRefreshWorker.run").Msg("background token refresh failed, session cleared")
			}
		}
	}
}
