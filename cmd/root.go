package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diagram-zoom/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "diagramzoom",
	Short: "Pan and zoom for Mermaid diagrams in documentation sites",
	Long: `diagramzoom fits rendered Mermaid diagrams to their containers and adds
pan/zoom controls and fullscreen overlays. It builds docs sites with the
browser runtime injected, serves them for development, and audits built
pages headlessly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
