package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

// buildUnvalidated merges all sources like build but skips server-side
// validation. The client builds its own view and validates that instead.
func (b *configBuilder) buildUnvalidated() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// withDefaults appends the built-in fallback configuration. Because mergo only
// fills zero-valued fields, defaults lose to every explicitly configured
// source. The token signing key deliberately has no default.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		Auth: Auth{
			TokenIssuer:          "ForecastFlow",
			TokenAudience:        "ForecastFlowUsers",
			RefreshTokenDuration: 7 * 24 * time.Hour,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Client: Client{
			ServerURL:      "http://localhost:8080",
			SessionDBPath:  "forecastflow-session.db",
			RequestTimeout: 15 * time.Second,
		},
	})

	return b
}
