package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
)

// authService is the concrete implementation of [AuthService]. It handles
// user registration, credential verification, and the JWT token lifecycle
// using a UserRepository for persistence and salted HMAC-SHA512 for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenParams bundles the signing key with the issuer and audience claims
	// enforced on every issued and parsed token.
	tokenParams utils.TokenParams

	// tokenDuration controls how long a newly issued access token remains
	// valid.
	tokenDuration time.Duration

	// refreshTokenDuration controls how long a newly issued refresh token
	// remains valid.
	refreshTokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new [AuthService] wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenParams: utils.TokenParams{
			SignKey:  cfg.TokenSignKey,
			Issuer:   cfg.TokenIssuer,
			Audience: cfg.TokenAudience,
		},
		tokenDuration:        cfg.TokenDuration(),
		refreshTokenDuration: cfg.RefreshTokenDuration,
		logger:               logger,
	}
}

// RegisterUser creates a new user account.
//
// The username is checked against the store before anything is hashed or
// written: a taken name returns [store.ErrUsernameTaken] without a create
// call. The database unique constraint remains the authoritative check, so a
// concurrent registration racing past the pre-check surfaces the same error
// from CreateUser.
//
// Registration does not issue tokens; the account must log in afterwards.
func (a *authService) RegisterUser(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	_, err := a.userRepository.FindUserByUsername(ctx, username)
	if err == nil {
		log.Info().Str("username", username).Msg("registration rejected: username taken")
		return models.User{}, store.ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNoUserFound) {
		log.Err(err).Str("username", username).Msg("username availability check failed")
		return models.User{}, fmt.Errorf("username availability check failed: %w", err)
	}

	hash, salt, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		if errors.Is(err, store.ErrUsernameTaken) {
			return models.User{}, store.ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// An unknown username and a wrong password both collapse to
// [ErrInvalidCredentials]; the caller cannot tell which check failed.
// Inactive accounts are rejected the same way.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserFound) {
			log.Info().Str("username", username).Msg("login rejected: unknown username")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.VerifyPassword(password, foundUser.PasswordHash, foundUser.PasswordSalt) {
		log.Info().Int64("id", foundUser.ID).Str("username", username).Msg("login rejected: wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !foundUser.IsActive {
		log.Info().Int64("id", foundUser.ID).Msg("login rejected: inactive account")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed access token for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenParams, user.ID, user.Username, a.tokenDuration)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// CreateRefreshToken issues a signed refresh token for the given user.
func (a *authService) CreateRefreshToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateRefreshToken(a.tokenParams, user.ID, user.Username, a.refreshTokenDuration)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw access token string.
//
// Any validation failure (expired, wrong issuer or audience, bad signature,
// malformed) is normalised to [ErrTokenIsExpiredOrInvalid] so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenParams)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Refresh exchanges a valid refresh token for a fresh access/refresh pair.
// The account is re-checked so that a deactivated or deleted user cannot keep
// a session alive through refresh alone.
func (a *authService) Refresh(ctx context.Context, refreshTokenString string) (models.Token, models.Token, error) {
	log := logger.FromContext(ctx)

	refreshToken, err := utils.ValidateAndParseRefreshToken(refreshTokenString, a.tokenParams)
	if err != nil {
		return models.Token{}, models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, refreshToken.UserID)
	if err != nil {
		log.Err(err).Int64("id", refreshToken.UserID).Msg("refresh rejected: account lookup failed")
		return models.Token{}, models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if !user.IsActive {
		log.Info().Int64("id", user.ID).Msg("refresh rejected: inactive account")
		return models.Token{}, models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	newAccess, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.Token{}, models.Token{}, err
	}

	newRefresh, err := a.CreateRefreshToken(ctx, user)
	if err != nil {
		return models.Token{}, models.Token{}, err
	}

	return newAccess, newRefresh, nil
}
