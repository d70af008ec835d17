// Package ticketfile loads declarative job ticket definitions from TOML and
// compiles them into ticket.SimpleJobTicket values.
//
// A definition names the assembly line, an optional job name and priority,
// job-level typed properties, and the run list files with their own
// properties. Validation happens before any ticket is built so a definition
// either compiles completely or reports every problem it found.
package ticketfile
