// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the server cannot run without. A missing token signing key is a
// hard startup failure: tokens signed with an empty key would be trivially
// forgeable.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenAudience == "" {
		return ErrInvalidAuthConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.SessionDBPath == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
