//go:build js && wasm

package jsbridge

import (
	"syscall/js"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
)

// Library is window.svgPanZoom. It is looked up on every call so a script
// that loads after the runtime is picked up by the next scan.
type Library struct {
	window js.Value
}

var _ viewer.Library = (*Library)(nil)

// NewLibrary returns the svg-pan-zoom adapter.
func NewLibrary() *Library { return &Library{window: js.Global()} }

func (l *Library) fn() js.Value { return l.window.Get("svgPanZoom") }

// Available reports whether window.svgPanZoom is a function.
func (l *Library) Available() bool { return l.fn().Type() == js.TypeFunction }

func (l *Library) New(svg dom.Element, opts viewer.Options) (viewer.Instance, error) {
	el, ok := svg.(*Element)
	if !ok || el == nil {
		return nil, viewer.ErrUnsupported
	}
	if !l.Available() {
		return nil, viewer.ErrUnavailable
	}
	cfg := map[string]any{
		"zoomEnabled":         opts.ZoomEnabled,
		"panEnabled":          opts.PanEnabled,
		"controlIconsEnabled": opts.ControlIconsEnabled,
		"fit":                 opts.Fit,
		"center":              opts.Center,
		"contain":             opts.Contain,
	}
	if opts.MinZoom > 0 {
		cfg["minZoom"] = opts.MinZoom
	}
	if opts.MaxZoom > 0 {
		cfg["maxZoom"] = opts.MaxZoom
	}
	if opts.ZoomScaleSensitivity > 0 {
		cfg["zoomScaleSensitivity"] = opts.ZoomScaleSensitivity
	}
	var v js.Value
	if err := catch("svgPanZoom", func() { v = l.fn().Invoke(el.v, cfg) }); err != nil {
		return nil, err
	}
	if v.IsNull() || v.IsUndefined() {
		return nil, viewer.ErrUnsupported
	}
	return &Instance{v: v}, nil
}

// Instance is one svgPanZoom instance.
type Instance struct {
	v         js.Value
	destroyed bool
}

var _ viewer.Instance = (*Instance)(nil)

func (i *Instance) invoke(method string, args ...any) error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	return catch(method, func() { i.v.Call(method, args...) })
}

// Zoom calls zoomAtPoint, which takes an absolute scale.
func (i *Instance) Zoom(scale float64, at geom.Point) error {
	return i.invoke("zoomAtPoint", scale, map[string]any{"x": at.X, "y": at.Y})
}

func (i *Instance) ResetZoom() error   { return i.invoke("resetZoom") }
func (i *Instance) ResetPan() error    { return i.invoke("resetPan") }
func (i *Instance) Center() error      { return i.invoke("center") }
func (i *Instance) Fit() error         { return i.invoke("fit") }
func (i *Instance) DisableZoom() error { return i.invoke("disableZoom") }
func (i *Instance) DisablePan() error  { return i.invoke("disablePan") }

func (i *Instance) Destroy() error {
	if err := i.invoke("destroy"); err != nil {
		return err
	}
	i.destroyed = true
	return nil
}
