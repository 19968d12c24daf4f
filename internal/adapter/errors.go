package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNoRefreshToken is returned by Refresh when the adapter holds no
	// refresh token to exchange.
	ErrNoRefreshToken = errors.New("no refresh token available")
)
