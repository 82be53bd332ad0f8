// Package app provides the application logic behind the CLI commands:
// it wires the configuration, the HTTP sender, and the dispatcher
// together, ships NDJSON record streams, and reports delivery summaries.
package app
