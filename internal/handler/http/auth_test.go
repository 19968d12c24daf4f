// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forecastflow/forecastflow/internal/app"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/mock"
	"github.com/forecastflow/forecastflow/internal/service"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testHandler bundles a Handler with the gomock service doubles behind it.
type testHandler struct {
	handler *Handler
	auth    *mock.MockAuthService
	users   *mock.MockUserService
	tasks   *mock.MockTaskService
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthService(ctrl)
	users := mock.NewMockUserService(ctrl)
	tasks := mock.NewMockTaskService(ctrl)

	h := NewHandler(&service.Services{
		AuthService: auth,
		UserService: users,
		TaskService: tasks,
	}, logger.Nop())

	return &testHandler{handler: h, auth: auth, users: users, tasks: tasks}
}

// injectNopLogger attaches a nop logger to the request context, standing in
// for the withTraceID middleware.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

// authedRequest attaches the given user identity to the request context,
// standing in for the auth middleware.
func authedRequest(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}

func jsonBody(t *testing.T, v any) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	}
}

func TestRegister_Success(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().
		RegisterUser(gomock.Any(), "alice", "alice@example.com", "s3cret-pw").
		Return(models.User{ID: 1, Username: "alice"}, nil)

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, validRegisterRequest())))
	rec := httptest.NewRecorder()

	th.handler.register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, app.MsgRegistered, resp.Message)
}

func TestRegister_UsernameTaken_ExactBody(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrUsernameTaken)

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, validRegisterRequest())))
	rec := httptest.NewRecorder()

	th.handler.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgUsernameTaken, strings.TrimSpace(rec.Body.String()))
}

func TestRegister_InvalidJSON(t *testing.T) {
	th := newTestHandler(t)

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json")))
	rec := httptest.NewRecorder()

	th.handler.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ValidationRejectsShortPassword(t *testing.T) {
	th := newTestHandler(t)

	body := validRegisterRequest()
	body.Password = "short"

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, body)))
	rec := httptest.NewRecorder()

	th.handler.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, strings.TrimSpace(rec.Body.String()))
}

func TestLogin_Success_ReturnsTokenPair(t *testing.T) {
	th := newTestHandler(t)
	user := models.User{ID: 7, Username: "alice", IsActive: true}

	th.auth.EXPECT().Login(gomock.Any(), "alice", "s3cret-pw").Return(user, nil)
	th.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "access.jwt"}, nil)
	th.auth.EXPECT().CreateRefreshToken(gomock.Any(), user).Return(models.Token{SignedString: "refresh.jwt"}, nil)

	body := models.LoginRequest{Username: "alice", Password: "s3cret-pw"}
	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, body)))
	rec := httptest.NewRecorder()

	th.handler.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access.jwt", resp.Token)
	assert.Equal(t, "refresh.jwt", resp.RefreshToken)
}

// TestLogin_UnknownUserAndWrongPassword_IdenticalResponses verifies that a
// login attempt against a nonexistent account and one with a wrong password
// produce byte-identical 401 responses, so the endpoint does not leak which
// usernames exist.
func TestLogin_UnknownUserAndWrongPassword_IdenticalResponses(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().Login(gomock.Any(), "ghost", "whatever").Return(models.User{}, service.ErrInvalidCredentials)
	th.auth.EXPECT().Login(gomock.Any(), "alice", "wrong-pw").Return(models.User{}, service.ErrInvalidCredentials)

	do := func(username, password string) *httptest.ResponseRecorder {
		body := models.LoginRequest{Username: username, Password: password}
		req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, body)))
		rec := httptest.NewRecorder()
		th.handler.login(rec, req)
		return rec
	}

	unknownUser := do("ghost", "whatever")
	wrongPassword := do("alice", "wrong-pw")

	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownUser.Body.String(), wrongPassword.Body.String())
	assert.Equal(t, app.MsgInvalidUsernamePassword, strings.TrimSpace(unknownUser.Body.String()))
}

func TestRefresh_Success(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().Refresh(gomock.Any(), "old.refresh").
		Return(models.Token{SignedString: "new.access"}, models.Token{SignedString: "new.refresh"}, nil)

	body := models.RefreshRequest{RefreshToken: "old.refresh"}
	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/refresh", jsonBody(t, body)))
	rec := httptest.NewRecorder()

	th.handler.refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new.access", resp.Token)
	assert.Equal(t, "new.refresh", resp.RefreshToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	th := newTestHandler(t)

	th.auth.EXPECT().Refresh(gomock.Any(), "garbage").
		Return(models.Token{}, models.Token{}, errors.New("token is malformed"))

	body := models.RefreshRequest{RefreshToken: "garbage"}
	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/refresh", jsonBody(t, body)))
	rec := httptest.NewRecorder()

	th.handler.refresh(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, strings.TrimSpace(rec.Body.String()))
}

func TestLogout_Success(t *testing.T) {
	th := newTestHandler(t)

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	req = authedRequest(req, 7)
	rec := httptest.NewRecorder()

	th.handler.logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, app.MsgLoggedOut, resp.Message)
}
