// Package preflight provides readiness checks for the local directories and
// the workflow server that amendo depends on.
//
// The CLI "amendo status" command runs them to display environment health,
// and "amendo submit" runs the server check before sending a ticket unless
// the submission is a dry run.
package preflight
