package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diagram-zoom/internal/config"
)

// loadConfig loads and validates the config, providing a user-friendly
// error. Unless --verbose was given, the command's logger takes the
// configured level.
func loadConfig(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	logger := loggerFromContext(cmd.Context())
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, logger, fmt.Errorf("loading config: %w\nRun `diagramzoom init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, logger, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if !verbose {
		logger.SetLevel(cfg.Level())
	}
	return cfg, logger, nil
}
