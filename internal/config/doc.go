// Package config loads, validates, and defaults the application configuration.
// Settings come from a YAML file read through Viper; validation fills
// derived fields (parsed log level, timeout, and dump size limit) so the
// rest of the application never re-parses textual settings.
package config
