// Package main is the entry point for the exarch CLI.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yaklabco/exarch/internal/cli"
	"github.com/yaklabco/exarch/internal/logging"
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
	// maxprocs.Set only fails for an invalid GOMAXPROCS value, in which case
	// the runtime default stays in effect.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logging.Default().Debug(fmt.Sprintf(format, args...))
	}))

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
