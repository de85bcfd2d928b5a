package main

import (
	"fmt"
	"os"

	"github.com/anas-gulzar-dev/grace-capture/internal/cli"
	"github.com/anas-gulzar-dev/grace-capture/internal/logger"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	logger.Init()
	defer logger.Close()

	cli.SetVersionInfo(version, commit)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
