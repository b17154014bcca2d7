package zoom

import (
	"time"

	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
)

// Default class names.
const (
	DefaultContentClass       = "md-content"
	DefaultDiagramClass       = "mermaid"
	DefaultControlClassPrefix = "svg-pan-zoom-control"
	DefaultControlClass       = "svg-pan-zoom-control"
	DefaultFullscreenClass    = "diagram-fullscreen-btn"
)

// Overlay element classes.
const (
	OverlayClass      = "diagram-zoom-overlay"
	OverlayFrameClass = "diagram-zoom-frame"
)

// ZoomBounds configures one kind of viewer.
type ZoomBounds struct {
	Min         float64
	Max         float64
	Sensitivity float64
}

// Options configures a Controller. Interactive is read once per binding, at
// creation.
type Options struct {
	Interactive bool

	ContentClass       string
	DiagramClass       string
	ControlClassPrefix string
	ControlClass       string
	FullscreenClass    string

	Fit         fit.Params
	PageZoom    ZoomBounds
	OverlayZoom ZoomBounds

	// VisibilityAttempts is the number of retries before the first fit is
	// forced; VisibilityInterval spaces them.
	VisibilityAttempts int
	VisibilityInterval time.Duration

	HashChangeDelay time.Duration
	ResizeDelay     time.Duration
	MutationDelay   time.Duration
	RendererDelay   time.Duration
	OverlaySettle   time.Duration
}

// DefaultOptions returns passive-mode options for MkDocs Material pages.
func DefaultOptions() Options {
	return Options{
		Interactive:        false,
		ContentClass:       DefaultContentClass,
		DiagramClass:       DefaultDiagramClass,
		ControlClassPrefix: DefaultControlClassPrefix,
		ControlClass:       DefaultControlClass,
		FullscreenClass:    DefaultFullscreenClass,
		Fit:                fit.DefaultParams(),
		PageZoom:           ZoomBounds{Min: 0.1, Max: 20, Sensitivity: 0.15},
		OverlayZoom:        ZoomBounds{Min: 0.05, Max: 30, Sensitivity: 0.15},
		VisibilityAttempts: 12,
		VisibilityInterval: 120 * time.Millisecond,
		HashChangeDelay:    150 * time.Millisecond,
		ResizeDelay:        150 * time.Millisecond,
		MutationDelay:      100 * time.Millisecond,
		RendererDelay:      300 * time.Millisecond,
		OverlaySettle:      50 * time.Millisecond,
	}
}

// pageViewer is the configuration of a page-level viewer. Input starts
// enabled so the first fit can use it; passive bindings disable it after.
func (o Options) pageViewer(interactive bool) viewer.Options {
	return viewer.Options{
		ZoomEnabled:          true,
		PanEnabled:           true,
		ControlIconsEnabled:  interactive,
		Fit:                  true,
		Center:               true,
		MinZoom:              o.PageZoom.Min,
		MaxZoom:              o.PageZoom.Max,
		ZoomScaleSensitivity: o.PageZoom.Sensitivity,
		Contain:              false,
	}
}

func (o Options) overlayViewer() viewer.Options {
	return viewer.Options{
		ZoomEnabled:          true,
		PanEnabled:           true,
		ControlIconsEnabled:  true,
		Fit:                  true,
		Center:               true,
		MinZoom:              o.OverlayZoom.Min,
		MaxZoom:              o.OverlayZoom.Max,
		ZoomScaleSensitivity: o.OverlayZoom.Sensitivity,
		Contain:              false,
	}
}
