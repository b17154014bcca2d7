package config

import (
	"time"

	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/zoom"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".diagramzoom.yml"

// DefaultExcludes are glob patterns skipped when walking docs and sites.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"**/.*/**",
	"assets/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	o := zoom.DefaultOptions()
	return &Config{
		Interactive:        o.Interactive,
		ContentClass:       o.ContentClass,
		DiagramClass:       o.DiagramClass,
		ControlClassPrefix: o.ControlClassPrefix,
		ControlClass:       o.ControlClass,
		FullscreenClass:    o.FullscreenClass,
		Fit: FitConfig{
			Margin:   o.Fit.Margin,
			MinScale: o.Fit.MinScale,
		},
		PageZoom: ZoomConfig{
			Min:         o.PageZoom.Min,
			Max:         o.PageZoom.Max,
			Sensitivity: o.PageZoom.Sensitivity,
		},
		OverlayZoom: ZoomConfig{
			Min:         o.OverlayZoom.Min,
			Max:         o.OverlayZoom.Max,
			Sensitivity: o.OverlayZoom.Sensitivity,
		},
		Visibility: VisibilityConfig{
			Attempts: o.VisibilityAttempts,
			Interval: o.VisibilityInterval,
		},
		Delays: DelayConfig{
			HashChange:    o.HashChangeDelay,
			Resize:        o.ResizeDelay,
			Mutation:      o.MutationDelay,
			RendererInit:  o.RendererDelay,
			OverlaySettle: o.OverlaySettle,
		},
		Viewport: ViewportConfig{Width: 1280, Height: 800},
		Site: SiteConfig{
			DocsDir:     "docs",
			OutputDir:   "site",
			ProjectName: "Documentation",
			Include:     []string{"**/*.md"},
			Exclude:     DefaultExcludes,
		},
		Server: ServerConfig{
			Port:         8000,
			WasmPath:     "diagramzoom.wasm",
			WasmExecPath: "wasm_exec.js",
		},
		LogLevel: "info",
	}
}

// ZoomOptions converts the configuration into controller options.
func (c *Config) ZoomOptions() zoom.Options {
	return zoom.Options{
		Interactive:        c.Interactive,
		ContentClass:       c.ContentClass,
		DiagramClass:       c.DiagramClass,
		ControlClassPrefix: c.ControlClassPrefix,
		ControlClass:       c.ControlClass,
		FullscreenClass:    c.FullscreenClass,
		Fit:                fit.Params(c.Fit),
		PageZoom:           zoom.ZoomBounds(c.PageZoom),
		OverlayZoom:        zoom.ZoomBounds(c.OverlayZoom),
		VisibilityAttempts: c.Visibility.Attempts,
		VisibilityInterval: c.Visibility.Interval,
		HashChangeDelay:    c.Delays.HashChange,
		ResizeDelay:        c.Delays.Resize,
		MutationDelay:      c.Delays.Mutation,
		RendererDelay:      c.Delays.RendererInit,
		OverlaySettle:      c.Delays.OverlaySettle,
	}
}

// PollBudget is the longest the controller waits for a container before
// forcing the first fit.
func (c *Config) PollBudget() time.Duration {
	return time.Duration(c.Visibility.Attempts) * c.Visibility.Interval
}
