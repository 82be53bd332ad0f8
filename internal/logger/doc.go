// Package logger provides structured logging built on the Zap library.
// It manages a process-wide logger with a dynamically adjustable level
// and exposes context-aware helpers so call sites can log through a
// context-scoped logger when one is attached.
// It supports plain, formatted, and key-value logging styles.
package logger
