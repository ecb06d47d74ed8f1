package main

import (
	"os"

	"github.com/runnerr0/timecraft/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// go-flags prints the error to stderr before returning it.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
