// Package version exposes build information set via -ldflags.
package version

import "fmt"

// Set at build time with
// -ldflags "-X github.com/rshade/linkstats/pkg/version.version=v1.2.3 ...".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the release version, "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, if recorded.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if recorded.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line description for --version style output.
func String() string {
	s := version
	if gitCommit != "" {
		s += fmt.Sprintf(" (commit %s", gitCommit)
		if buildDate != "" {
			s += ", built " + buildDate
		}
		s += ")"
	}
	return s
}
