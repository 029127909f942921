// Package version reports build metadata stamped in through -ldflags
package version

import "runtime/debug"

// BuildInfo holds version information about a binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set via -ldflags "-X 'introspect/internal/core/version.version=v0.3.0'
// -X 'introspect/internal/core/version.commit=abcd' -X 'introspect/internal/core/version.date=2025-09-02'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// vcs is a seam over the embedded build settings
var vcs = func() (rev, when string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return "", ""
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			when = s.Value
		}
	}
	return rev, when
}

// Info returns build info for service, falling back to the module's vcs stamp
// when ldflags were not supplied
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	rev, when := vcs()
	if bi.Commit == "none" && rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		bi.Commit = rev
	}
	if bi.Date == "unknown" && when != "" {
		bi.Date = when
	}
	return bi
}
