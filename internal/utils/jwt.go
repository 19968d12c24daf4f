package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/forecastflow/forecastflow/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenParams bundles the configuration every token operation needs: the
// HMAC-SHA256 signing key plus the issuer and audience claims that are
// embedded on issue and enforced on validation.
type TokenParams struct {
	SignKey  string
	Issuer   string
	Audience string
}

// GenerateJWTToken creates a signed HMAC-SHA256 access token.
//
// The token carries the following claims:
//   - Issuer      (iss): the configured token issuer
//   - Audience    (aud): the configured token audience
//   - Subject     (sub): the user ID encoded as a base-10 string
//   - unique_name      : the user's login name, for display purposes
//   - IssuedAt    (iat): the current time
//   - ExpiresAt   (exp): the current time plus tokenDuration
//
// Returns an error if the signing key, issuer, audience, or duration is
// empty/zero, or if signing fails.
func GenerateJWTToken(params TokenParams, userID int64, username string, tokenDuration time.Duration) (models.Token, error) {
	return generateToken(params, userID, username, tokenDuration, "")
}

// GenerateRefreshToken creates a signed HMAC-SHA256 refresh token.
//
// It is shaped exactly like an access token but additionally carries
// "typ": "refresh", so the two kinds cannot be substituted for each other.
// Refresh tokens are configured with a longer lifetime than access tokens.
func GenerateRefreshToken(params TokenParams, userID int64, username string, tokenDuration time.Duration) (models.Token, error) {
	return generateToken(params, userID, username, tokenDuration, models.TokenTypeRefresh)
}

func generateToken(params TokenParams, userID int64, username string, tokenDuration time.Duration, tokenType string) (models.Token, error) {
	if params.SignKey == "" || params.Issuer == "" || params.Audience == "" || tokenDuration == 0 {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    params.Issuer,
			Audience:  jwt.ClaimStrings{params.Audience},
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username:  username,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(params.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification against params.SignKey (HMAC family only)
//   - Issuer (iss) claim check against params.Issuer
//   - Audience (aud) claim check against params.Audience
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to an int64 user ID
//
// Returns the parsed token with its cached UserID, or an error if any of the
// checks fail.
func ValidateAndParseJWTToken(tokenString string, params TokenParams) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(params.SignKey), nil
	},
		jwt.WithIssuer(params.Issuer),
		jwt.WithAudience(params.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userIDStr, err := claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user ID: %w", err)
	}

	return models.Token{Token: token, Claims: *claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseRefreshToken validates tokenString the same way as
// [ValidateAndParseJWTToken] and additionally requires the "typ" claim to be
// [models.TokenTypeRefresh]. An access token presented here is rejected.
func ValidateAndParseRefreshToken(tokenString string, params TokenParams) (models.Token, error) {
	token, err := ValidateAndParseJWTToken(tokenString, params)
	if err != nil {
		return models.Token{}, err
	}

	if token.Claims.TokenType != models.TokenTypeRefresh {
		return models.Token{}, errors.New("token is not a refresh token")
	}

	return token, nil
}

// ParseBearerToken extracts the token part of an "Authorization" header value
// of the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
