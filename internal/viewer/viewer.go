// Package viewer is the boundary to the pan/zoom viewer library that owns
// zoom state and input handling for one vector graphic.
//
// Every operation returns an error instead of being assumed to succeed, and
// Guard turns panics raised by an implementation (for example a JavaScript
// exception surfacing through syscall/js) into errors, so callers can pick
// an explicit fallback per operation.
package viewer

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

var (
	// ErrUnavailable means the viewer library is not loaded.
	ErrUnavailable = errors.New("viewer: library not loaded")
	// ErrDestroyed is returned by calls on a destroyed instance.
	ErrDestroyed = errors.New("viewer: instance destroyed")
	// ErrUnsupported means the graphic cannot host a viewer.
	ErrUnsupported = errors.New("viewer: unsupported graphic")
)

// Options configures a new viewer instance.
type Options struct {
	ZoomEnabled          bool
	PanEnabled           bool
	ControlIconsEnabled  bool
	Fit                  bool
	Center               bool
	MinZoom              float64
	MaxZoom              float64
	ZoomScaleSensitivity float64
	// Contain keeps the content inside the viewport while panning.
	Contain bool
}

// Instance is a live viewer bound to one graphic.
type Instance interface {
	// Zoom sets the absolute zoom scale, keeping the point at stationary.
	Zoom(scale float64, at geom.Point) error
	ResetZoom() error
	ResetPan() error
	Center() error
	Fit() error
	// DisableZoom and DisablePan turn off user input handling only.
	DisableZoom() error
	DisablePan() error
	Destroy() error
}

// Library creates viewer instances.
type Library interface {
	Available() bool
	New(svg dom.Element, opts Options) (Instance, error)
}

// CallError reports a failed viewer operation.
type CallError struct {
	Op    string
	Err   error
	Panic any
}

func (e *CallError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("viewer: %s panicked: %v", e.Op, e.Panic)
	}
	return fmt.Sprintf("viewer: %s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Create builds an instance through lib, guarding against a missing
// library and panics during construction.
func Create(lib Library, svg dom.Element, opts Options) (Instance, error) {
	if lib == nil || !lib.Available() {
		return nil, ErrUnavailable
	}
	if svg == nil {
		return nil, ErrUnsupported
	}
	var inst Instance
	err := call("new", func() error {
		var err error
		inst, err = lib.New(svg, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrUnsupported
	}
	return Guard(inst), nil
}

// Guard wraps inst so that panics from any call are returned as *CallError.
func Guard(inst Instance) Instance {
	if inst == nil {
		return nil
	}
	if g, ok := inst.(guarded); ok {
		return g
	}
	return guarded{inst: inst}
}

// Unwrap returns the instance under a Guard wrapper.
func Unwrap(inst Instance) Instance {
	if g, ok := inst.(guarded); ok {
		return g.inst
	}
	return inst
}

type guarded struct {
	inst Instance
}

func (g guarded) Zoom(scale float64, at geom.Point) error {
	return call("zoom", func() error { return g.inst.Zoom(scale, at) })
}

func (g guarded) ResetZoom() error { return call("resetZoom", g.inst.ResetZoom) }

func (g guarded) ResetPan() error { return call("resetPan", g.inst.ResetPan) }

func (g guarded) Center() error { return call("center", g.inst.Center) }

func (g guarded) Fit() error { return call("fit", g.inst.Fit) }

func (g guarded) DisableZoom() error { return call("disableZoom", g.inst.DisableZoom) }

func (g guarded) DisablePan() error { return call("disablePan", g.inst.DisablePan) }

func (g guarded) Destroy() error { return call("destroy", g.inst.Destroy) }

func call(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallError{Op: op, Panic: r}
		}
	}()
	if err := fn(); err != nil {
		var ce *CallError
		if errors.As(err, &ce) {
			return err
		}
		return &CallError{Op: op, Err: err}
	}
	return nil
}
