// Package config loads, normalizes, and validates amendo configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AMENDO_SERVER and AMENDO_API_KEY. The Config type centralizes every knob the
// CLI needs: the workflow server endpoint, client identity, local state
// directories, polling cadence, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
