package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exarch/internal/configloader"
	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/pkg/config"
	"github.com/yaklabco/exarch/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new exarch configuration file",
		Long: `Create a new .exarch.yml configuration file in the current directory,
populated with the default settings and a comment for each of them.`,
		Example: `  exarch init                       Create .exarch.yml
  exarch init --force               Replace an existing .exarch.yml
  exarch init --output custom.yml   Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .exarch.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, config.GenerateTemplate(), fsutil.DefaultFileMode); err != nil {
		return withExitCode(ExitIOError, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("set tls.cert and tls.key, then run 'exarch serve'")

	return nil
}
