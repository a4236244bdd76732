// Package buildinfo holds release metadata set at link time, for example
// -ldflags "-X github.com/aidanlsb/tagr/internal/buildinfo.Version=v0.3.0".
// The values are empty in local builds.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
