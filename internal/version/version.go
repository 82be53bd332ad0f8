// Package version exposes build metadata injected at link time.
package version

//nolint:gochecknoglobals // These are set via -ldflags at build time.
var (
	// Version is the semantic version of the binary.
	Version = "0.1.0"
	// Commit is the VCS commit the binary was built from.
	Commit = "none"
	// BuildTime is the timestamp of the build.
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
