package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrMissingTokenSignKey indicates that no JWT signing key was supplied
	// by any configuration source. The server refuses to start in this state.
	ErrMissingTokenSignKey = errors.New("token signing key is not configured")

	// ErrInvalidAuthConfigs indicates incomplete token settings
	// (for example, an empty issuer or audience).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")

	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")

	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, an empty session database path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
