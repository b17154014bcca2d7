package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diagram-zoom/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize diagramzoom configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure diagramzoom for your docs project and writes the config file (.diagramzoom.yml unless --config is given).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
