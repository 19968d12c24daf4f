// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from process environment variables through the `env` and
// `envPrefix` struct tags declared on [StructuredConfig], [ClientConfig], and
// their nested types.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return nil
}
