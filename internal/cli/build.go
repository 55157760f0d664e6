package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/pkg/config"
	"github.com/yaklabco/exarch/pkg/gemtext"
	"github.com/yaklabco/exarch/pkg/reporter"
	"github.com/yaklabco/exarch/pkg/runner"
)

// defaultBuildOutput is used when neither flags nor config name an output.
const defaultBuildOutput = "public"

type buildFlags struct {
	output string
	jobs   int
	ignore []string
	format string
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [root] [output]",
		Short: "Convert a tree of Markdown files to Gemtext",
		Long: `Convert every Markdown file under root into a Gemtext file under output.

"docs/guide.md" is written to "<output>/docs/guide.gmi". Hidden files and
directories are skipped, as are paths matching an --ignore glob. Targets whose
content would not change are left untouched.`,
		Example: `  exarch build ./site ./public
  exarch build --jobs 4 --ignore 'drafts/**' ./site
  exarch build --format table
  exarch build --format json > build.json`,
		Args: usageArgs(cobra.MaximumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (default: public)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "report format: text, table, json")

	return cmd
}

// buildConfig collects the flags and arguments the user actually set.
func buildConfig(cmd *cobra.Command, args []string, flags *buildFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if changed("output") {
		cfg.Build.Output = flags.output
	}
	if len(args) > 1 {
		cfg.Build.Output = args[1]
	}
	if changed("jobs") {
		cfg.Build.Jobs = flags.jobs
	}
	if changed("ignore") {
		cfg.Build.Ignore = flags.ignore
	}

	return cfg
}

func runBuild(cmd *cobra.Command, args []string, flags *buildFlags) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	cfg, err := loadConfig(cmd, buildConfig(cmd, args, flags))
	if err != nil {
		return err
	}

	opts := runner.Options{
		Root:         cfg.Root,
		Output:       cfg.Build.Output,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Build.Ignore,
		Jobs:         cfg.Build.Jobs,
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Output == "" {
		opts.Output = defaultBuildOutput
	}

	ctx := logging.WithLogger(cmd.Context(), logging.Default())

	start := time.Now()
	result, err := runner.New(gemtext.NewConverter(nil), nil).Run(ctx, opts)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("build %s: %w", opts.Root, err))
	}
	elapsed := time.Since(start)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	rep, err := reporter.New(reporter.Options{
		Writer:  cmd.OutOrStdout(),
		Format:  format,
		Color:   colorMode,
		Root:    opts.Root,
		Output:  opts.Output,
		Elapsed: elapsed,
	})
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}
	if err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write report: %w", err))
	}

	logging.Default().Debug("build finished",
		logging.FieldFilesFound, result.Stats.FilesFound,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesUnchanged, result.Stats.FilesUnchanged,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, elapsed,
	)

	if result.HasFailures() {
		return withExitCode(ExitFailure, ErrBuildFailed)
	}
	return nil
}
