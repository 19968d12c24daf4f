package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeRefresh is the value of the "typ" claim carried by refresh tokens.
// Access tokens omit the claim entirely, so the two kinds can never be used
// interchangeably.
const TokenTypeRefresh = "refresh"

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing) and
// [Claims] for claim access. SignedString holds the compact serialized form of
// the token (header.payload.signature) ready to be transmitted in HTTP headers
// or stored on the client side.
//
// UserID is a cached, parsed copy of the "sub" (subject) claim converted to
// int64, populated during validation so downstream code does not re-parse the
// subject string.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// Claims holds the registered claim set plus application claims.
	Claims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// Claims is the claim set embedded in every issued token: the standard
// registered claims (iss, aud, sub, iat, exp) plus the user's display name
// under "unique_name" and, for refresh tokens only, "typ".
type Claims struct {
	jwt.RegisteredClaims

	// Username mirrors the account's login name for display purposes.
	Username string `json:"unique_name,omitempty"`

	// TokenType distinguishes refresh tokens from access tokens.
	// Empty for access tokens, [TokenTypeRefresh] for refresh tokens.
	TokenType string `json:"typ,omitempty"`
}

// GetUserID extracts the user identifier from the token's "sub" (subject)
// claim, parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
