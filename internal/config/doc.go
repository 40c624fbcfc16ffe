// Package config loads QuickRecap settings from defaults, an optional
// config.yaml and QUICKRECAP_* environment variables, and validates the
// result before any component is built from it.
package config
