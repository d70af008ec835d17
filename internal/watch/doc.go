// Package watch polls the overview of a submitted job a bounded number of
// times and keeps the ledger in step with what the server reports.
//
// Only one watcher may write to a ledger at a time; the Watcher holds a file
// lock next to the database for the duration of a Watch call and fails fast
// when another process already holds it.
package watch
