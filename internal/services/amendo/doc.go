// Package amendo talks to the Amendo/OneVision workflow server over its REST
// interface.
//
// The Client submits rendered job tickets, fetches job overviews as opaque
// JSON, and downloads result files. Every request carries the configured user
// agent and, when present, the X-API-KEY header. Failures are tagged with
// services.ErrTransport (network and HTTP status problems) or
// services.ErrValidation (tickets that refuse to render) so callers can tell
// them apart without parsing messages.
package amendo
