package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diagram-zoom/internal/progress"
	"github.com/ziadkadry99/diagram-zoom/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static documentation website",
	Long: `Builds a static HTML site from the Markdown docs directory. Mermaid code
blocks become diagram containers, and every page gets the diagram-zoom
runtime and its config injected.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("docs", "", "override docs directory")
	siteCmd.Flags().String("output", "", "override output directory")
	siteCmd.Flags().Bool("serve", false, "start the dev server after generating")
	siteCmd.Flags().Int("port", 0, "port for the dev server (defaults to server.port)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if dir, _ := cmd.Flags().GetString("docs"); dir != "" {
		cfg.Site.DocsDir = dir
	}
	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		cfg.Site.OutputDir = dir
	}
	if _, err := os.Stat(cfg.Site.DocsDir); os.IsNotExist(err) {
		return fmt.Errorf("docs directory not found at %s", cfg.Site.DocsDir)
	}

	script, err := cfg.RuntimeScript()
	if err != nil {
		return fmt.Errorf("encoding runtime config: %w", err)
	}

	gen := &site.Generator{
		DocsDir:       cfg.Site.DocsDir,
		OutputDir:     cfg.Site.OutputDir,
		ProjectName:   cfg.Site.ProjectName,
		ContentClass:  cfg.ContentClass,
		Include:       cfg.Site.Include,
		Exclude:       cfg.Site.Exclude,
		Runtime:       site.DefaultRuntime(),
		RuntimeConfig: script,
		WasmPath:      cfg.Server.WasmPath,
		WasmExecPath:  cfg.Server.WasmExecPath,
		Logger:        logger,
		Reporter:      progress.NewReporter("Building site"),
	}
	res, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	logger.Info("site generated",
		"output", cfg.Site.OutputDir,
		"pages", res.Pages,
		"copied", res.Copied,
		"diagrams", res.Diagrams,
	)

	if serve, _ := cmd.Flags().GetBool("serve"); serve {
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}
		srv, err := newServer(cfg, cfg.Site.OutputDir, logger)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), srv, logger)
	}
	return nil
}

// ignoreClosed drops the error a server returns after a clean shutdown.
func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
