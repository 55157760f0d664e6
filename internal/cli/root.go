// Package cli provides the Cobra command structure for exarch.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exarch/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root exarch command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "exarch",
		Short: "A static site generator for Gemini",
		Long: `exarch publishes Markdown documents on Gemini.

It serves a tree of Markdown files over the Gemini protocol, converting each
document to Gemtext as it is requested, or converts the tree ahead of time
into .gmi files for any Gemini server to host.`,
		Version: info.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
