// Package main is the entry point for the gomdtable CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gomdtable/internal/cli"
	"github.com/yaklabco/gomdtable/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Per-file errors and unformatted files have already been reported.
		if !errors.Is(err, cli.ErrFilesFailed) && !errors.Is(err, cli.ErrUnformatted) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
