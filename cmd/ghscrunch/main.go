// Command ghscrunch reconciles national GHS hazard classification lists.
package main

import (
	"context"
	"os"

	"github.com/turtacn/ghscrunch/internal/interfaces/cli"
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
	// Execute prints the error itself.
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
