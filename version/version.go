// Package version carries build metadata, set at link time:
//
//	go build -ldflags "-X github.com/ChristianF88/runsort/version.Version=v1.2.0 -X github.com/ChristianF88/runsort/version.Date=2025-01-01T00:00:00Z"
package version

var (
	Version = "dev"
	Date    = ""
)
