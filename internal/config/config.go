package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: DIAGRAMZOOM_PAGE_ZOOM__MAX sets page_zoom.max.
const EnvPrefix = "DIAGRAMZOOM_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DIAGRAMZOOM_*). A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Parse reads configuration from YAML (or JSON) held in memory, on top of
// the defaults. The browser runtime uses it for the config the page embeds.
func Parse(data []byte) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := k.Load(bytesProvider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey maps DIAGRAMZOOM_PAGE_ZOOM__MAX to page_zoom.max.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// bytesProvider is a koanf.Provider over an in-memory document.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("bytes provider does not support Read")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"content_class":    c.ContentClass,
		"diagram_class":    c.DiagramClass,
		"fullscreen_class": c.FullscreenClass,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		if strings.ContainsAny(v, " \t'\"") {
			return fmt.Errorf("%s %q must be a single class name", name, v)
		}
	}
	if c.ControlClassPrefix == "" && c.ControlClass == "" {
		return fmt.Errorf("control_class_prefix or control_class is required")
	}

	if c.Fit.Margin <= 0 || c.Fit.Margin > 1 {
		return fmt.Errorf("fit.margin must be in (0, 1], got %v", c.Fit.Margin)
	}
	if c.Fit.MinScale <= 0 {
		return fmt.Errorf("fit.min_scale must be positive")
	}

	for name, z := range map[string]ZoomConfig{"page_zoom": c.PageZoom, "overlay_zoom": c.OverlayZoom} {
		if z.Min <= 0 || z.Max <= 0 {
			return fmt.Errorf("%s bounds must be positive", name)
		}
		if z.Min > z.Max {
			return fmt.Errorf("%s.min %v exceeds %s.max %v", name, z.Min, name, z.Max)
		}
		if z.Sensitivity <= 0 {
			return fmt.Errorf("%s.sensitivity must be positive", name)
		}
	}

	if c.Visibility.Attempts < 0 {
		return fmt.Errorf("visibility.attempts must be non-negative")
	}
	if c.Visibility.Interval < 0 {
		return fmt.Errorf("visibility.interval must be non-negative")
	}
	d := c.Delays
	if d.HashChange < 0 || d.Resize < 0 || d.Mutation < 0 || d.RendererInit < 0 || d.OverlaySettle < 0 {
		return fmt.Errorf("delays must be non-negative")
	}

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must have a positive size")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	return nil
}

// Level returns the configured log level, or info when it is invalid.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
