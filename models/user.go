package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Credential material must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user assigned by the
	// persistence layer.
	ID int64 `json:"id"`

	// Username is the unique login identifier. Uniqueness is enforced by
	// the database constraint on the users table.
	Username string `json:"username"`

	// Email is the user's contact address. Non-unique.
	Email string `json:"email"`

	// PasswordHash is the salted HMAC-SHA512 digest of the user's password.
	// Never serialized to JSON.
	PasswordHash []byte `json:"-"`

	// PasswordSalt is the random per-user salt used as the HMAC key when
	// computing PasswordHash. Never serialized to JSON.
	PasswordSalt []byte `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// IsActive marks whether the account may authenticate. Inactive accounts
	// fail login and token refresh.
	IsActive bool `json:"is_active"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
