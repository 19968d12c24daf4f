// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	log := logger.Nop()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, log)
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── Register ────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: "registered"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret"})

	require.NoError(t, err)
	accessToken, refreshToken := a.Tokens()
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
}

func TestRegister_UsernameTaken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Username is already taken."))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "secret"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.TokenResponse{Token: "access-1", RefreshToken: "refresh-1"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	tokens, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "access-1", tokens.Token)

	accessToken, refreshToken := a.Tokens()
	assert.Equal(t, "access-1", accessToken)
	assert.Equal(t, "refresh-1", refreshToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Invalid username or password."))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	accessToken, _ := a.Tokens()
	assert.Empty(t, accessToken)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestRefresh_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be called without a refresh token")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)

		var req models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-old", req.RefreshToken)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.TokenResponse{Token: "access-new", RefreshToken: "refresh-new"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens("access-old", "refresh-old")

	_, err := a.Refresh(context.Background())
	require.NoError(t, err)

	accessToken, refreshToken := a.Tokens()
	assert.Equal(t, "access-new", accessToken)
	assert.Equal(t, "refresh-new", refreshToken)
}

// ── 401 interception ────────────────────────────────────────────────────────

func TestListTasks_RefreshesAndReplaysOn401(t *testing.T) {
	var refreshCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.TokenResponse{Token: "access-new", RefreshToken: "refresh-new"})
		case "/api/tasks":
			if r.Header.Get("Authorization") != "Bearer access-new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]models.Task{{ID: 1, Title: "task"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens("access-expired", "refresh-old")

	tasks, err := a.ListTasks(context.Background(), models.TaskFilter{})

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestConcurrent401_SingleRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls.Add(1)
			<-release // hold the exchange open so all callers pile up on it
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.TokenResponse{Token: "access-new", RefreshToken: "refresh-new"})
		case "/api/tasks":
			if r.Header.Get("Authorization") != "Bearer access-new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]models.Task{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens("access-expired", "refresh-old")

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.ListTasks(context.Background(), models.TaskFilter{})
		}(i)
	}

	// let every goroutine reach the refresh barrier, then release it
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int32(1), refreshCalls.Load(), "expected exactly one refresh exchange")
}

func TestGetTask_RefreshFails_Returns401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("refresh token expired"))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens("access-expired", "refresh-expired")

	_, err := a.GetTask(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetTask_RefreshFails_ReportsExpiredSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens("access-expired", "refresh-expired")

	var expiredCalls atomic.Int32
	a.OnSessionExpired(func(context.Context) {
		expiredCalls.Add(1)
		a.SetTokens("", "")
	})

	_, err := a.GetTask(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), expiredCalls.Load(), "expected the expiry callback to run once")

	accessToken, refreshToken := a.Tokens()
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
}

// ── Task ownership mapping ──────────────────────────────────────────────────

func TestGetTask_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Task not found."))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens("access", "refresh")

	_, err := a.GetTask(context.Background(), 404)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
