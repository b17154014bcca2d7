// Package panzoom is a headless pan/zoom viewer with the same surface as the
// svg-pan-zoom browser library.
//
// State is kept in Go and written back to the document as a transform on the
// graphic's viewport group (the first <g>, tagged svg-pan-zoom_viewport), so
// rendered pages show the result. Control icons are injected as a
// svg-pan-zoom-control group whose buttons respond to clicks.
//
// Scales are absolute: 1 maps one user unit to one layout pixel. MinZoom and
// MaxZoom clamp every zoom, including programmatic ones. Contain is accepted
// but not enforced.
package panzoom

import (
	"errors"
	"fmt"
	"math"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
)

// Class names written into the document.
const (
	ViewportClass   = "svg-pan-zoom_viewport"
	ControlClass    = "svg-pan-zoom-control"
	ControlsID      = "svg-pan-zoom-controls"
	backgroundClass = "svg-pan-zoom-control-background"
	elementClass    = "svg-pan-zoom-control-element"
)

// ErrInputDisabled is returned by user input methods after DisableZoom or
// DisablePan.
var ErrInputDisabled = errors.New("panzoom: input disabled")

// Library creates headless viewers for graphics in one document.
type Library struct {
	doc       dom.Document
	instances map[string]*Instance
	created   int
}

var _ viewer.Library = (*Library)(nil)

// New returns a library that creates control elements in doc.
func New(doc dom.Document) *Library {
	return &Library{doc: doc, instances: make(map[string]*Instance)}
}

// Available always reports true.
func (l *Library) Available() bool { return true }

// New binds a viewer to svg. Like svg-pan-zoom, a graphic that already has
// a live viewer gets that viewer back.
func (l *Library) New(svg dom.Element, opts viewer.Options) (viewer.Instance, error) {
	if svg == nil || svg.Tag() != "svg" {
		return nil, viewer.ErrUnsupported
	}
	if inst, ok := l.instances[svg.Key()]; ok && !inst.destroyed {
		return inst, nil
	}
	if opts.MinZoom <= 0 {
		opts.MinZoom = 0.5
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = 10
	}
	if opts.ZoomScaleSensitivity <= 0 {
		opts.ZoomScaleSensitivity = 0.2
	}
	inst := &Instance{
		lib:         l,
		svg:         svg,
		opts:        opts,
		scale:       1,
		zoomEnabled: opts.ZoomEnabled,
		panEnabled:  opts.PanEnabled,
	}
	if g := svg.Query(dom.Tag("g")); g != nil {
		g.AddClass(ViewportClass)
		inst.viewport = g
	}
	if opts.Fit {
		_ = inst.Fit()
	}
	if opts.Center {
		_ = inst.Center()
	}
	inst.initScale, inst.initPan = inst.scale, inst.pan
	if opts.ControlIconsEnabled {
		if err := inst.addControls(); err != nil {
			return nil, fmt.Errorf("panzoom: controls: %w", err)
		}
	}
	l.instances[svg.Key()] = inst
	l.created++
	return inst, nil
}

// Instance returns the live viewer bound to svg.
func (l *Library) Instance(svg dom.Element) (*Instance, bool) {
	if svg == nil {
		return nil, false
	}
	inst, ok := l.instances[svg.Key()]
	if !ok || inst.destroyed {
		return nil, false
	}
	return inst, true
}

// Created returns the number of viewers constructed so far.
func (l *Library) Created() int { return l.created }

// State is a snapshot of a viewer.
type State struct {
	Scale       float64
	Pan         geom.Point
	ZoomEnabled bool
	PanEnabled  bool
	Controls    bool
	Destroyed   bool
}

// Instance is a headless viewer bound to one graphic.
type Instance struct {
	lib      *Library
	svg      dom.Element
	viewport dom.Element
	controls dom.Element
	opts     viewer.Options

	scale     float64
	pan       geom.Point
	initScale float64
	initPan   geom.Point

	zoomEnabled bool
	panEnabled  bool
	destroyed   bool
}

var _ viewer.Instance = (*Instance)(nil)

// State returns the current viewer state.
func (i *Instance) State() State {
	return State{
		Scale:       i.scale,
		Pan:         i.pan,
		ZoomEnabled: i.zoomEnabled,
		PanEnabled:  i.panEnabled,
		Controls:    i.controls != nil && i.controls.Connected(),
		Destroyed:   i.destroyed,
	}
}

// Zoom sets the absolute scale, keeping at fixed on screen.
func (i *Instance) Zoom(scale float64, at geom.Point) error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return fmt.Errorf("panzoom: invalid scale %v", scale)
	}
	i.zoomTo(scale, at)
	return nil
}

func (i *Instance) ResetZoom() error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	i.scale = i.initScale
	i.render()
	return nil
}

func (i *Instance) ResetPan() error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	i.pan = i.initPan
	i.render()
	return nil
}

// Fit scales the content to fill the viewport exactly. It does nothing
// while the graphic has no layout.
func (i *Instance) Fit() error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	vp := i.viewportSize()
	box, ok := fit.ContentBox(i.svg)
	if vp.Empty() || !ok {
		return nil
	}
	i.scale = math.Min(vp.Width/box.Width, vp.Height/box.Height)
	i.pan = geom.Point{X: -box.X * i.scale, Y: -box.Y * i.scale}
	i.render()
	return nil
}

// Center moves the content's center to the viewport's center.
func (i *Instance) Center() error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	vp := i.viewportSize()
	box, ok := fit.ContentBox(i.svg)
	if vp.Empty() || !ok {
		return nil
	}
	c := vp.Center()
	i.pan = geom.Point{
		X: c.X - (box.X+box.Width/2)*i.scale,
		Y: c.Y - (box.Y+box.Height/2)*i.scale,
	}
	i.render()
	return nil
}

func (i *Instance) DisableZoom() error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	i.zoomEnabled = false
	return nil
}

func (i *Instance) DisablePan() error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	i.panEnabled = false
	return nil
}

// Destroy removes the controls and detaches the viewer from its graphic.
// The last transform stays in place.
func (i *Instance) Destroy() error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	if i.controls != nil {
		i.controls.Remove()
		i.controls = nil
	}
	i.destroyed = true
	delete(i.lib.instances, i.svg.Key())
	return nil
}

// ZoomIn zooms one sensitivity step around the viewport center, as the
// zoom-in control does.
func (i *Instance) ZoomIn() error { return i.zoomStep(1) }

// ZoomOut zooms one sensitivity step out around the viewport center.
func (i *Instance) ZoomOut() error { return i.zoomStep(-1) }

// Wheel applies a mouse wheel zoom at a point. Negative delta zooms in.
func (i *Instance) Wheel(delta float64, at geom.Point) error {
	if err := i.input(i.zoomEnabled); err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}
	factor := 1 + i.opts.ZoomScaleSensitivity
	if delta > 0 {
		factor = 1 / factor
	}
	i.zoomTo(i.scale*factor, at)
	return nil
}

// PanBy drags the content by dx, dy layout pixels.
func (i *Instance) PanBy(dx, dy float64) error {
	if err := i.input(i.panEnabled); err != nil {
		return err
	}
	i.pan = geom.Point{X: i.pan.X + dx, Y: i.pan.Y + dy}
	i.render()
	return nil
}

func (i *Instance) zoomStep(dir int) error {
	if err := i.input(i.zoomEnabled); err != nil {
		return err
	}
	factor := 1 + i.opts.ZoomScaleSensitivity
	if dir < 0 {
		factor = 1 / factor
	}
	i.zoomTo(i.scale*factor, i.viewportSize().Center())
	return nil
}

func (i *Instance) input(enabled bool) error {
	if i.destroyed {
		return viewer.ErrDestroyed
	}
	if !enabled {
		return ErrInputDisabled
	}
	return nil
}

func (i *Instance) zoomTo(scale float64, at geom.Point) {
	scale = math.Max(i.opts.MinZoom, math.Min(i.opts.MaxZoom, scale))
	ratio := scale / i.scale
	i.pan = geom.Point{
		X: at.X - (at.X-i.pan.X)*ratio,
		Y: at.Y - (at.Y-i.pan.Y)*ratio,
	}
	i.scale = scale
	i.render()
}

// viewportSize is the graphic's own box, or its container's when the
// graphic reports none.
func (i *Instance) viewportSize() geom.Size {
	if l := i.svg.Layout(); l.Visible() {
		return l.Size()
	}
	if p := i.svg.Parent(); p != nil {
		return p.Layout().Size()
	}
	return geom.Size{}
}

func (i *Instance) render() {
	if i.viewport == nil {
		return
	}
	i.viewport.SetAttr("transform", fmt.Sprintf("matrix(%g,0,0,%g,%g,%g)", i.scale, i.scale, i.pan.X, i.pan.Y))
}

func (i *Instance) addControls() error {
	doc := i.lib.doc
	group := doc.CreateElement("g")
	group.SetAttr("id", ControlsID)
	group.AddClass(ControlClass)

	buttons := []struct {
		id     string
		action func() error
	}{
		{"svg-pan-zoom-zoom-in", i.ZoomIn},
		{"svg-pan-zoom-reset-pan-zoom", func() error {
			if err := i.input(i.zoomEnabled); err != nil {
				return err
			}
			_ = i.ResetZoom()
			return i.ResetPan()
		}},
		{"svg-pan-zoom-zoom-out", i.ZoomOut},
	}
	for _, b := range buttons {
		btn := doc.CreateElement("g")
		btn.SetAttr("id", b.id)
		btn.AddClass(ControlClass)
		bg := doc.CreateElement("rect")
		bg.AddClass(backgroundClass)
		icon := doc.CreateElement("path")
		icon.AddClass(elementClass)
		if err := btn.Append(bg); err != nil {
			return err
		}
		if err := btn.Append(icon); err != nil {
			return err
		}
		action := b.action
		btn.OnClick(func(dom.Element) { _ = action() })
		if err := group.Append(btn); err != nil {
			return err
		}
	}
	if err := i.svg.Append(group); err != nil {
		return err
	}
	i.controls = group
	return nil
}
