package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/forecastflow/forecastflow/internal/adapter"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/models"
)

// sessionManager is the concrete implementation of [SessionManager]. The
// current session lives in memory behind a mutex and is mirrored into the
// local session store on every change, so a restart picks up where the last
// run left off.
type sessionManager struct {
	adapter      adapter.ServerAdapter
	sessionStore store.SessionStore
	logger       *logger.Logger

	mu      sync.RWMutex
	session models.Session
}

// NewSessionManager constructs a [SessionManager] on top of the server
// adapter and the local session store. An adapter that reports dead sessions
// gets the manager's invalidation hooked up, so a failed refresh on the
// adapter's 401 replay path destroys the session the same way a failed
// RefreshToken call does.
func NewSessionManager(serverAdapter adapter.ServerAdapter, sessionStore store.SessionStore, logger *logger.Logger) SessionManager {
	m := &sessionManager{adapter: serverAdapter, sessionStore: sessionStore, logger: logger}
	if notifier, ok := serverAdapter.(adapter.SessionExpiryNotifier); ok {
		notifier.OnSessionExpired(m.invalidate)
	}
	return m
}

// Restore implements [SessionManager]. A corrupt or missing stored session
// simply leaves the manager unauthenticated.
func (m *sessionManager) Restore(ctx context.Context) bool {
	session, err := m.sessionStore.LoadSession(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrLocalSessionNotFound) {
			m.logger.Err(err).Msg("stored session could not be loaded")
		}
		return false
	}
	if !session.IsAuthenticated() {
		return false
	}

	m.setSession(session)
	m.adapter.SetTokens(session.Token, session.RefreshToken)
	m.logger.Debug().Str("username", session.User.Username).Msg("session restored")
	return true
}

// Register implements [SessionManager].
func (m *sessionManager) Register(ctx context.Context, username, email, password string) error {
	err := m.adapter.Register(ctx, models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	return mapAdapterError(err)
}

// Login implements [SessionManager]. On success the session is stored in
// memory and persisted; a persistence failure is logged but does not fail the
// login, since the in-memory session is already usable.
func (m *sessionManager) Login(ctx context.Context, username, password string) bool {
	tokens, err := m.adapter.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		m.logger.Err(err).Str("username", username).Msg("login failed")
		return false
	}

	session := models.Session{
		Token:        tokens.Token,
		RefreshToken: tokens.RefreshToken,
		User:         models.User{Username: username},
		UpdatedAt:    time.Now(),
	}
	m.setSession(session)

	if err = m.sessionStore.SaveSession(ctx, session); err != nil {
		m.logger.Err(err).Msg("session could not be persisted")
	}

	return true
}

// Logout implements [SessionManager]. The local session is cleared before the
// server call so that a slow or failing server can never leave the client
// logged in.
func (m *sessionManager) Logout(ctx context.Context) bool {
	m.invalidate(ctx)

	if err := m.adapter.Logout(ctx); err != nil {
		m.logger.Err(err).Msg("server logout failed")
		return false
	}

	return true
}

// RefreshToken implements [SessionManager]. A failed exchange invalidates the
// whole session: the tokens are discarded locally and the user must log in
// again.
func (m *sessionManager) RefreshToken(ctx context.Context) bool {
	tokens, err := m.adapter.Refresh(ctx)
	if err != nil {
		m.logger.Err(err).Msg("token refresh failed")
		m.invalidate(ctx)
		return false
	}

	m.mu.Lock()
	m.session.Token = tokens.Token
	m.session.RefreshToken = tokens.RefreshToken
	m.session.UpdatedAt = time.Now()
	session := m.session
	m.mu.Unlock()

	if err = m.sessionStore.SaveSession(ctx, session); err != nil {
		m.logger.Err(err).Msg("refreshed session could not be persisted")
	}

	return true
}

// IsAuthenticated implements [SessionManager].
func (m *sessionManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.IsAuthenticated()
}

// Session implements [SessionManager].
func (m *sessionManager) Session() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// invalidate destroys the session everywhere it lives: the in-memory copy,
// the adapter's token pair, and the persisted row. It backs Logout, a failed
// RefreshToken exchange, and the adapter's dead-session callback.
func (m *sessionManager) invalidate(ctx context.Context) {
	m.setSession(models.Session{})
	m.adapter.SetTokens("", "")

	if err := m.sessionStore.ClearSession(ctx); err != nil {
		m.logger.Err(err).Msg("stored session could not be cleared")
	}
}

func (m *sessionManager) setSession(session models.Session) {
	m.mu.Lock()
	m.session = session
	m.mu.Unlock()
}
