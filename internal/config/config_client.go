package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the forecastflow API server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// SessionDBPath is the SQLite file holding the persisted session.
	SessionDBPath string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via the same builder chain as the server (minus
// the signing-key requirement, which is a server-side concern), maps only the
// fields relevant to the client runtime, and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	base, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		buildUnvalidated()
	if err != nil {
		return nil, fmt.Errorf("error building client config: %w", err)
	}

	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    base.Client.ServerURL,
			RequestTimeout: base.Client.RequestTimeout,
		},
		Storage: ClientStorage{
			SessionDBPath: base.Client.SessionDBPath,
		},
	}

	return cfg, cfg.validate()
}
