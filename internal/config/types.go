package config

import "time"

// Config is the top-level diagram-zoom configuration, corresponding to
// .diagramzoom.yml.
type Config struct {
	Interactive        bool   `yaml:"interactive" koanf:"interactive" json:"interactive"`
	ContentClass       string `yaml:"content_class" koanf:"content_class" json:"content_class"`
	DiagramClass       string `yaml:"diagram_class" koanf:"diagram_class" json:"diagram_class"`
	ControlClassPrefix string `yaml:"control_class_prefix" koanf:"control_class_prefix" json:"control_class_prefix"`
	ControlClass       string `yaml:"control_class" koanf:"control_class" json:"control_class"`
	FullscreenClass    string `yaml:"fullscreen_class" koanf:"fullscreen_class" json:"fullscreen_class"`

	Fit         FitConfig        `yaml:"fit" koanf:"fit" json:"fit"`
	PageZoom    ZoomConfig       `yaml:"page_zoom" koanf:"page_zoom" json:"page_zoom"`
	OverlayZoom ZoomConfig       `yaml:"overlay_zoom" koanf:"overlay_zoom" json:"overlay_zoom"`
	Visibility  VisibilityConfig `yaml:"visibility" koanf:"visibility" json:"visibility"`
	Delays      DelayConfig      `yaml:"delays" koanf:"delays" json:"delays"`
	Viewport    ViewportConfig   `yaml:"viewport" koanf:"viewport" json:"viewport"`

	Site   SiteConfig   `yaml:"site" koanf:"site" json:"-"`
	Server ServerConfig `yaml:"server" koanf:"server" json:"-"`

	LogLevel string `yaml:"log_level" koanf:"log_level" json:"log_level"`
}

// FitConfig tunes the fit formula.
type FitConfig struct {
	Margin   float64 `yaml:"margin" koanf:"margin" json:"margin"`
	MinScale float64 `yaml:"min_scale" koanf:"min_scale" json:"min_scale"`
}

// ZoomConfig bounds one kind of viewer.
type ZoomConfig struct {
	Min         float64 `yaml:"min" koanf:"min" json:"min"`
	Max         float64 `yaml:"max" koanf:"max" json:"max"`
	Sensitivity float64 `yaml:"sensitivity" koanf:"sensitivity" json:"sensitivity"`
}

// VisibilityConfig bounds the wait for a container to be laid out.
type VisibilityConfig struct {
	Attempts int           `yaml:"attempts" koanf:"attempts" json:"attempts"`
	Interval time.Duration `yaml:"interval" koanf:"interval" json:"interval"`
}

// DelayConfig holds the settle delay of each rescan trigger.
type DelayConfig struct {
	HashChange    time.Duration `yaml:"hash_change" koanf:"hash_change" json:"hash_change"`
	Resize        time.Duration `yaml:"resize" koanf:"resize" json:"resize"`
	Mutation      time.Duration `yaml:"mutation" koanf:"mutation" json:"mutation"`
	RendererInit  time.Duration `yaml:"renderer_init" koanf:"renderer_init" json:"renderer_init"`
	OverlaySettle time.Duration `yaml:"overlay_settle" koanf:"overlay_settle" json:"overlay_settle"`
}

// ViewportConfig is the window size used by headless runs.
type ViewportConfig struct {
	Width  float64 `yaml:"width" koanf:"width" json:"width"`
	Height float64 `yaml:"height" koanf:"height" json:"height"`
}

// SiteConfig controls static site generation.
type SiteConfig struct {
	DocsDir     string   `yaml:"docs_dir" koanf:"docs_dir"`
	OutputDir   string   `yaml:"output_dir" koanf:"output_dir"`
	ProjectName string   `yaml:"project_name" koanf:"project_name"`
	Include     []string `yaml:"include" koanf:"include"`
	Exclude     []string `yaml:"exclude" koanf:"exclude"`
}

// ServerConfig controls the development server.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	WasmPath        string `yaml:"wasm_path" koanf:"wasm_path"`
	WasmExecPath    string `yaml:"wasm_exec_path" koanf:"wasm_exec_path"`
}
