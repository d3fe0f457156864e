package id3tag

import "runtime"

// Version is the semantic version of the id3tag library.
const Version = "0.1.0"

// GetVersion returns Version.
func GetVersion() string {
	return Version
}

// VersionInfo describes the library build.
type VersionInfo struct {
	Version   string
	GitCommit string // -ldflags, "unknown" otherwise
	BuildTime string // -ldflags, "unknown" otherwise
	GoVersion string
}

// GetVersionInfo reports Version, the commit and build time stamped by
//
//	go build -ldflags="-X github.com/simonhull/id3tag.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/id3tag.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// and the Go runtime that built the binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
