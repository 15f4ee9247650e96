// Package buildinfo carries version metadata stamped at build time.
package buildinfo

// Set by the linker via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
