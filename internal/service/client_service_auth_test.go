package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forecastflow/forecastflow/internal/adapter"
	"github.com/forecastflow/forecastflow/internal/app"
	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/mock"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSessionManager(t *testing.T, ctrl *gomock.Controller) (*sessionManager, *mock.MockServerAdapter, *mock.MockSessionStore) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockStore := mock.NewMockSessionStore(ctrl)
	m := NewSessionManager(mockAdapter, mockStore, logger.Nop()).(*sessionManager)
	return m, mockAdapter, mockStore
}

// ── Restore ──────────────────────────────────────────────────────────────────

func TestSessionManager_Restore_PrimesAdapter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	stored := models.Session{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		User:         models.User{Username: "alice"},
		UpdatedAt:    time.Now(),
	}

	mockStore.EXPECT().LoadSession(ctx).Return(stored, nil)
	mockAdapter.EXPECT().SetTokens("access-1", "refresh-1")

	assert.True(t, m.Restore(ctx))
	assert.True(t, m.IsAuthenticated())
}

func TestSessionManager_Restore_NoStoredSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockStore.EXPECT().LoadSession(ctx).Return(models.Session{}, store.ErrLocalSessionNotFound)

	assert.False(t, m.Restore(ctx))
	assert.False(t, m.IsAuthenticated())
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestSessionManager_Login_Success_PersistsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Login(ctx, models.LoginRequest{Username: "alice", Password: "secret"}).
		Return(models.TokenResponse{Token: "access-1", RefreshToken: "refresh-1"}, nil)

	mockStore.EXPECT().
		SaveSession(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, session models.Session) error {
			assert.Equal(t, "access-1", session.Token)
			assert.Equal(t, "alice", session.User.Username)
			return nil
		})

	assert.True(t, m.Login(ctx, "alice", "secret"))
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "access-1", m.Session().Token)
}

func TestSessionManager_Login_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, _ := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Login(ctx, gomock.Any()).
		Return(models.TokenResponse{}, errors.New("connection refused"))

	assert.False(t, m.Login(ctx, "alice", "secret"))
	assert.False(t, m.IsAuthenticated())
}

func TestSessionManager_Login_BadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, _ := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Login(ctx, gomock.Any()).
		Return(models.TokenResponse{}, adapter.ErrUnauthorized)

	assert.False(t, m.Login(ctx, "alice", "wrong"))
}

func TestSessionManager_Login_PersistFailureStillLoggedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Login(ctx, gomock.Any()).
		Return(models.TokenResponse{Token: "access-1", RefreshToken: "refresh-1"}, nil)
	mockStore.EXPECT().
		SaveSession(ctx, gomock.Any()).
		Return(errors.New("disk full"))

	assert.True(t, m.Login(ctx, "alice", "secret"))
	assert.True(t, m.IsAuthenticated())
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestSessionManager_Logout_ClearsEvenWhenServerFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	m.setSession(models.Session{Token: "access-1", RefreshToken: "refresh-1", UpdatedAt: time.Now()})

	mockAdapter.EXPECT().SetTokens("", "")
	mockStore.EXPECT().ClearSession(ctx).Return(nil)
	mockAdapter.EXPECT().Logout(ctx).Return(errors.New("connection refused"))

	ok := m.Logout(ctx)

	assert.False(t, ok, "server call failed")
	assert.False(t, m.IsAuthenticated(), "local session must be gone regardless")
}

func TestSessionManager_Logout_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	m.setSession(models.Session{Token: "access-1", UpdatedAt: time.Now()})

	mockAdapter.EXPECT().SetTokens("", "")
	mockStore.EXPECT().ClearSession(ctx).Return(nil)
	mockAdapter.EXPECT().Logout(ctx).Return(nil)

	assert.True(t, m.Logout(ctx))
	assert.False(t, m.IsAuthenticated())
}

// ── RefreshToken ─────────────────────────────────────────────────────────────

func TestSessionManager_RefreshToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	m.setSession(models.Session{
		Token:        "access-old",
		RefreshToken: "refresh-old",
		User:         models.User{Username: "alice"},
		UpdatedAt:    time.Now(),
	})

	mockAdapter.EXPECT().
		Refresh(ctx).
		Return(models.TokenResponse{Token: "access-new", RefreshToken: "refresh-new"}, nil)
	mockStore.EXPECT().
		SaveSession(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, session models.Session) error {
			assert.Equal(t, "access-new", session.Token)
			assert.Equal(t, "refresh-new", session.RefreshToken)
			assert.Equal(t, "alice", session.User.Username, "user identity survives the rotation")
			return nil
		})

	require.True(t, m.RefreshToken(ctx))
	assert.Equal(t, "access-new", m.Session().Token)
}

func TestSessionManager_RefreshToken_FailureClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, mockStore := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	m.setSession(models.Session{Token: "access-old", RefreshToken: "refresh-old", UpdatedAt: time.Now()})

	mockAdapter.EXPECT().
		Refresh(ctx).
		Return(models.TokenResponse{}, adapter.ErrUnauthorized)
	mockAdapter.EXPECT().SetTokens("", "")
	mockStore.EXPECT().ClearSession(ctx).Return(nil)

	assert.False(t, m.RefreshToken(ctx))
	assert.False(t, m.IsAuthenticated())
}

// TestSessionManager_ReplayRefreshFailureDestroysSession drives the real HTTP
// adapter against a server whose guarded routes and refresh endpoint both
// answer 401. The refresh the adapter runs behind the task call fails, and
// that failure must destroy the session: the in-memory copy, the adapter's
// token pair, and the persisted row.
func TestSessionManager_ReplayRefreshFailureDestroysSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	adapterCfg := config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second}
	serverAdapter, err := adapter.NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)

	mockStore := mock.NewMockSessionStore(ctrl)
	m := NewSessionManager(serverAdapter, mockStore, logger.Nop()).(*sessionManager)

	ctx := context.Background()
	stored := models.Session{
		Token:        "access-stale",
		RefreshToken: "refresh-dead",
		User:         models.User{Username: "alice"},
		UpdatedAt:    time.Now(),
	}
	mockStore.EXPECT().LoadSession(ctx).Return(stored, nil)
	require.True(t, m.Restore(ctx))

	mockStore.EXPECT().ClearSession(gomock.Any()).Return(nil)

	tasks := NewClientTaskService(serverAdapter, logger.Nop())
	_, err = tasks.List(ctx, models.TaskFilter{})

	require.Error(t, err)
	assert.False(t, m.IsAuthenticated(), "in-memory session must not survive a failed refresh")

	accessToken, refreshToken := serverAdapter.Tokens()
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestSessionManager_Register_MapsUsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mockAdapter, _ := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Register(ctx, gomock.Any()).
		Return(fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgUsernameTaken))

	err := m.Register(ctx, "alice", "alice@example.com", "secret")

	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}
