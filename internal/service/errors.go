package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so that a login response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrUserInactive = errors.New("user account is inactive")
)
