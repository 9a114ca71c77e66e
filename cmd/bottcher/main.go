// Command bottcher is the entry point for the complexity scoring CLI and
// the HTTP API server.
package main

import (
	"os"

	"github.com/boskovicgroup/bottchercomplexity/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
