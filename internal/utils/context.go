// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authenticated account ID is stored
// in the request context by the auth middleware. Used together with
// GetUserIDFromContext for type-safe retrieval.
var UserIDCtxKey = contextKey("userID")

// UsernameCtxKey is the key under which the authenticated account's display
// name (the "unique_name" token claim) is stored in the request context.
var UsernameCtxKey = contextKey("username")

// GetUserIDFromContext retrieves the authenticated account ID from the
// context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetUsernameFromContext retrieves the authenticated account's display name
// from the context.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
