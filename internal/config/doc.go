// Package config loads and merges application configuration from
// environment variables, command-line flags, an optional JSON file, and
// built-in defaults. The merged configuration is validated before use;
// server startup fails fast on a missing token signing key.
package config
