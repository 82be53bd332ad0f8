// Package sender implements the HTTP delivery layer behind the dispatcher.
// It owns the network concerns the dispatcher deliberately does not:
// connection handling, per-attempt timeouts, body encoding, and the
// mapping of non-success statuses to errors.
package sender
