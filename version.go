package polytrans

// Version information for polytrans.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/polytrans.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "polytrans"

	// Description is a short description of the application.
	Description = "Multi-provider translation orchestrator with HTML-safe parallel translation"

	// Version is the semantic version of the application.
	Version = "0.3.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/polytrans"

	// License is the software license.
	License = "MIT"
)

// BuildInfo contains build-time information, set via ldflags.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version string with the short commit hash when known.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns the User-Agent header adapters send.
func UserAgent() string {
	return Name + "/" + Version
}
