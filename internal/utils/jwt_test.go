package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/forecastflow/forecastflow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = TokenParams{
	SignKey:  "test-sign-key",
	Issuer:   "forecastflow",
	Audience: "forecastflow-client",
}

func TestGenerateJWTToken_Claims(t *testing.T) {
	token, err := GenerateJWTToken(testParams, 42, "alice", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testParams)
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "alice", parsed.Claims.Username)
	assert.Equal(t, "forecastflow", parsed.Claims.Issuer)
	assert.Empty(t, parsed.Claims.TokenType)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params TokenParams
		dur    time.Duration
	}{
		{"empty sign key", TokenParams{Issuer: "i", Audience: "a"}, time.Hour},
		{"empty issuer", TokenParams{SignKey: "k", Audience: "a"}, time.Hour},
		{"empty audience", TokenParams{SignKey: "k", Issuer: "i"}, time.Hour},
		{"zero duration", testParams, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.params, 1, "bob", tt.dur)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken(testParams, 1, "alice", time.Hour)
	require.NoError(t, err)

	wrongKey := testParams
	wrongKey.SignKey = "other-key"

	_, err = ValidateAndParseJWTToken(token.SignedString, wrongKey)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken(testParams, 1, "alice", time.Hour)
	require.NoError(t, err)

	wrongIssuer := testParams
	wrongIssuer.Issuer = "someone-else"

	_, err = ValidateAndParseJWTToken(token.SignedString, wrongIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongAudience(t *testing.T) {
	token, err := GenerateJWTToken(testParams, 1, "alice", time.Hour)
	require.NoError(t, err)

	wrongAudience := testParams
	wrongAudience.Audience = "other-app"

	_, err = ValidateAndParseJWTToken(token.SignedString, wrongAudience)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken(testParams, 1, "alice", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, testParams)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_TamperedPayload(t *testing.T) {
	token, err := GenerateJWTToken(testParams, 1, "alice", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token.SignedString, ".")
	require.Len(t, parts, 3)

	// flip a character inside the payload segment
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = ValidateAndParseJWTToken(tampered, testParams)
	assert.Error(t, err)
}

func TestRefreshToken_TypeChecks(t *testing.T) {
	refresh, err := GenerateRefreshToken(testParams, 7, "alice", 24*time.Hour)
	require.NoError(t, err)

	parsed, err := ValidateAndParseRefreshToken(refresh.SignedString, testParams)
	require.NoError(t, err)
	assert.Equal(t, models.TokenTypeRefresh, parsed.Claims.TokenType)
	assert.Equal(t, int64(7), parsed.UserID)

	// an access token must not pass refresh validation
	access, err := GenerateJWTToken(testParams, 7, "alice", time.Hour)
	require.NoError(t, err)

	_, err = ValidateAndParseRefreshToken(access.SignedString, testParams)
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ParseBearerToken("abc.def.ghi")
	assert.Error(t, err)

	_, err = ParseBearerToken("Bearer ")
	assert.Error(t, err)

	_, err = ParseBearerToken("")
	assert.Error(t, err)
}
