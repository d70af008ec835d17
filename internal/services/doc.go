// Package services defines shared utilities consumed by the Amendo
// integrations and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation IDs, job IDs, and ticket
//     names for logging.
//   - Structured error markers plus the Wrap helper that let callers tell
//     transport failures apart from incomplete tickets or bad configuration.
//
// Use these helpers when wiring new integration code so error handling and
// observability stay uniform across commands.
package services
