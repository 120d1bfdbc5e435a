package trackmeta

import "runtime"

// Version is the release of the trackmeta module.
const Version = "0.1.0"

// BuildInfo describes the running build: the module release, the stamps
// injected by the linker and the tag engines compiled in.
type BuildInfo struct {
	Version   string
	GitCommit string // "unknown" unless stamped
	BuildTime string // "unknown" unless stamped
	GoVersion string

	// Engines lists the registered tag engines; DefaultEngine is the one
	// Open uses without WithEngine or WithLibrary.
	Engines       []string
	DefaultEngine string
}

// ReadBuildInfo returns the BuildInfo of the running binary.
//
// Commit and build time are stamped with -ldflags, for example:
//
//	go build -tags katatsuki -ldflags="-X github.com/simonhull/trackmeta.gitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/simonhull/trackmeta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/trackmeta
//
// The Go version falls back to the runtime's when not stamped.
func ReadBuildInfo() BuildInfo {
	goVer := goVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}

	return BuildInfo{
		Version:       Version,
		GitCommit:     gitCommit,
		BuildTime:     buildTime,
		GoVersion:     goVer,
		Engines:       Engines(),
		DefaultEngine: DefaultEngine(),
	}
}

var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)
