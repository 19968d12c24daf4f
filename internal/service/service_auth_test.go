package service

import (
	"context"
	"testing"
	"time"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/mock"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:          "test-sign-key",
		TokenIssuer:           "forecastflow",
		TokenAudience:         "forecastflow-client",
		TokenExpiresInMinutes: "60",
		RefreshTokenDuration:  24 * time.Hour,
	}
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()
	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, testAuthConfig(), logger.Nop()).(*authService)
	return svc, mockRepo
}

func storedCredentials(t *testing.T, password string) ([]byte, []byte) {
	t.Helper()
	hash, salt, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash, salt
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		FindUserByUsername(ctx, "alice").
		Return(models.User{}, store.ErrNoUserFound)

	mockRepo.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "alice@example.com", user.Email)
			assert.True(t, user.IsActive)
			assert.True(t, utils.VerifyPassword("secret123", user.PasswordHash, user.PasswordSalt),
				"stored credential must verify against the original password")

			user.ID = 1
			return user, nil
		})

	registered, err := svc.RegisterUser(ctx, "alice", "alice@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.ID)
}

func TestAuthService_RegisterUser_UsernameTaken_NeverCallsCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		FindUserByUsername(ctx, "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)

	mockRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Times(0)

	_, err := svc.RegisterUser(ctx, "alice", "alice@example.com", "secret123")

	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestAuthService_RegisterUser_RaceLostToConcurrentInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// the pre-check passes but the unique constraint fires on insert
	mockRepo.EXPECT().
		FindUserByUsername(ctx, "alice").
		Return(models.User{}, store.ErrNoUserFound)
	mockRepo.EXPECT().
		CreateUser(ctx, gomock.Any()).
		Return(models.User{}, store.ErrUsernameTaken)

	_, err := svc.RegisterUser(ctx, "alice", "alice@example.com", "secret123")

	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestAuthService_RegisterUser_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.RegisterUser(context.Background(), "", "a@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), "alice", "a@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, salt := storedCredentials(t, "secret123")
	mockRepo.EXPECT().
		FindUserByUsername(ctx, "alice").
		Return(models.User{ID: 1, Username: "alice", PasswordHash: hash, PasswordSalt: salt, IsActive: true}, nil)

	user, err := svc.Login(ctx, "alice", "secret123")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthService_Login_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		FindUserByUsername(ctx, "nobody").
		Return(models.User{}, store.ErrNoUserFound)
	_, unknownErr := svc.Login(ctx, "nobody", "whatever")

	hash, salt := storedCredentials(t, "secret123")
	mockRepo.EXPECT().
		FindUserByUsername(ctx, "alice").
		Return(models.User{ID: 1, Username: "alice", PasswordHash: hash, PasswordSalt: salt, IsActive: true}, nil)
	_, wrongPwErr := svc.Login(ctx, "alice", "not-the-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPwErr, "the two failures must be indistinguishable")
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, salt := storedCredentials(t, "secret123")
	mockRepo.EXPECT().
		FindUserByUsername(ctx, "alice").
		Return(models.User{ID: 1, Username: "alice", PasswordHash: hash, PasswordSalt: salt, IsActive: false}, nil)

	_, err := svc.Login(ctx, "alice", "secret123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := models.User{ID: 42, Username: "alice"}

	token, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "alice", parsed.Claims.Username)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Refresh_RotatesPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := models.User{ID: 42, Username: "alice", IsActive: true}

	refreshToken, err := svc.CreateRefreshToken(ctx, user)
	require.NoError(t, err)

	mockRepo.EXPECT().
		FindUserByID(ctx, int64(42)).
		Return(user, nil)

	newAccess, newRefresh, err := svc.Refresh(ctx, refreshToken.SignedString)

	require.NoError(t, err)
	assert.Equal(t, int64(42), newAccess.UserID)
	assert.Empty(t, newAccess.Claims.TokenType)
	assert.Equal(t, models.TokenTypeRefresh, newRefresh.Claims.TokenType)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	accessToken, err := svc.CreateToken(ctx, models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	_, _, err = svc.Refresh(ctx, accessToken.SignedString)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Refresh_InactiveAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	refreshToken, err := svc.CreateRefreshToken(ctx, models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	mockRepo.EXPECT().
		FindUserByID(ctx, int64(42)).
		Return(models.User{ID: 42, IsActive: false}, nil)

	_, _, err = svc.Refresh(ctx, refreshToken.SignedString)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
