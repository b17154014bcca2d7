package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diagram-zoom/internal/config"
	"github.com/ziadkadry99/diagram-zoom/internal/server"
	"github.com/ziadkadry99/diagram-zoom/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve a built docs site with the zoom runtime injected",
	Long: `Starts a development server for a built documentation site (site.output_dir
unless a directory is given). HTML pages get the diagram-zoom runtime injected
on the fly, so sites built by other generators work too.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}
		if all, _ := cmd.Flags().GetBool("allow-all-origins"); all {
			cfg.Server.AllowAllOrigins = true
		}
		dir := cfg.Site.OutputDir
		if len(args) == 1 {
			dir = args[0]
		}
		srv, err := newServer(cfg, dir, logger)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), srv, logger)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func newServer(cfg *config.Config, dir string, logger *log.Logger) (*server.Server, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("site directory %s: %w\nRun `diagramzoom site` first to build it", dir, err)
	}
	script, err := cfg.RuntimeScript()
	if err != nil {
		return nil, fmt.Errorf("encoding runtime config: %w", err)
	}
	return server.New(server.Config{
		Port:          cfg.Server.Port,
		SiteDir:       dir,
		AllowAll:      cfg.Server.AllowAllOrigins,
		WasmPath:      cfg.Server.WasmPath,
		WasmExecPath:  cfg.Server.WasmExecPath,
		RuntimeScript: script,
		Runtime:       site.DefaultRuntime(),
		Fit:           cfg.ZoomOptions().Fit,
	}, logger), nil
}

// runServer serves until ctx is done or an interrupt arrives, then shuts
// the server down gracefully.
func runServer(ctx context.Context, srv *server.Server, logger *log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", "err", err)
		}
	}()

	return ignoreClosed(srv.Start())
}
