// Package ledger records submitted job tickets and the overviews polled for
// them in SQLite.
//
// Each entry keeps the rendered ticket XML alongside the server-assigned job
// ID, so a submission can be inspected or replayed after the fact, and the
// most recent overview JSON with a coarse status derived from it. The
// database is local bookkeeping only; the workflow server stays the source of
// truth for job state.
//
// Schema changes bump schemaVersion in schema.go; an older database must be
// removed before it can be reopened.
package ledger
