// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/hsrw-ise/advisor-go/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/hsrw-ise/advisor-go/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/hsrw-ise/advisor-go/internal/buildinfo.BuildDate=...
var BuildDate = ""

// Release returns the identifier to report to error tracking. Falls back
// to the commit SHA when no version tag was injected.
func Release() string {
	if Version != "" {
		return Version
	}
	return Commit
}
