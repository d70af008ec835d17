// Package ticket builds Amendo/OneVision job tickets.
//
// A Document owns one ordered element tree and hands out File and Properties
// values that only hold handles into it. Callers set job metadata, add run
// list entries, attach typed property lists to the job or to individual
// files, then render the tree with XML. Element placement follows the
// server's expectations exactly: new property lists are prepended to their
// owner, Priority sits directly after RunList, and run list entries keep
// their insertion order.
//
// Ticket variants such as SimpleJobTicket register validators that run
// before rendering, so the base serializer stays free of variant rules.
//
// A Document is meant for build-then-serialize use by a single goroutine.
package ticket
