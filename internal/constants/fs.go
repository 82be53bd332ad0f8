// Package constants defines filesystem constants shared across the application.
package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	// Owner: read and write;
	// Group: read;
	// Others: read.
	DefaultFilePermissions os.FileMode = 0o644
)

// File extension constants.
const (
	ExtensionYAML    = ".yaml"
	ExtensionNDJSON  = ".ndjson"
	ExtensionJSONL   = ".jsonl"
	StdinPlaceholder = "-"
)
