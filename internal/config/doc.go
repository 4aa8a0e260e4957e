// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It covers both the lookup command (catalog
// path, result count, output format) and the HTTP server settings.
package config
