package models

import "time"

// Session is the client-side authentication state persisted between runs of
// the terminal client. It is stored in the local SQLite database, never on
// the server.
type Session struct {
	// Token is the current access token, empty when logged out.
	Token string `json:"token"`

	// RefreshToken is the long-lived credential used to obtain new access
	// tokens without re-entering the password.
	RefreshToken string `json:"refresh_token"`

	// User is the cached user-info blob returned at login time.
	User User `json:"user"`

	// UpdatedAt records when the session row was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAuthenticated reports whether the session holds an access token.
// It is a pure read of cached state and may be stale relative to server-side
// token expiry.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
