package core

// Version is the application version, set at build time via ldflags:
//
//	go build -ldflags "-X github.com/giftwork2016-hub/adobe-PS-AI-plugin/core.Version=$(git describe --tags --always)" .
//
// Defaults to "dev" when not injected.
var Version = "dev"

// BuildTime is the build timestamp, set at build time via ldflags.
// Defaults to "unknown" when not injected.
var BuildTime = "unknown"

// GetVersion returns the application version string.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns a formatted version information string,
// e.g. "v1.2.0 (built 2026-08-01T10:30:00Z)".
func GetVersionInfo() string {
	return Version + " (built " + BuildTime + ")"
}
