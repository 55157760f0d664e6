package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exarch/internal/configloader"
	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/pkg/config"
)

// loadConfig resolves the configuration for cmd, with cliCfg holding the
// values given as flags. It applies the configured log level unless --debug
// is set and logs any loading warnings.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	cfg := loadResult.Config

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	return cfg, nil
}
