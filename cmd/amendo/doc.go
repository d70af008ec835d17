// Package main hosts the amendo CLI entrypoint and command graph.
//
// The Cobra-based command tree compiles TOML ticket definitions into job
// tickets, submits them to the workflow server, polls and records job
// overviews in the local ledger, downloads results, and scaffolds
// configuration. Configuration resolution, logger setup, and client
// construction live in commandContext so subcommands only deal with their
// own flags and output.
package main
