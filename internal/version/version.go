// Package version exposes build metadata set at link time:
//
//	go build -ldflags "-X github.com/web-debit/navigate-relay/app/internal/version.version=v1.2.0 \
//	  -X github.com/web-debit/navigate-relay/app/internal/version.buildDate=2024-01-28T10:00:00Z \
//	  -X github.com/web-debit/navigate-relay/app/internal/version.gitCommit=abc1234"
package version

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}
