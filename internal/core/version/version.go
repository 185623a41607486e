// Package version provides information about the build version of the service.
package version

// PipelineVersion is bumped whenever a reply pipeline stage changes output
// for the same input and draws
const PipelineVersion = 3

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service  string `json:"service"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Pipeline int    `json:"pipeline"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'chatguard/internal/core/version.version=v0.0.1'
	// -X 'chatguard/internal/core/version.commit=abcd' -X 'chatguard/internal/core/version.date=2026-10-01'"
	return BuildInfo{
		Service:  Service,
		Version:  version,
		Commit:   commit,
		Date:     date,
		Pipeline: PipelineVersion,
	}
}

// Service is the reported service name
const Service = "chatguard-api"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
