package viewer

import (
	"errors"
	"testing"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

type panicky struct{}

func (panicky) Zoom(float64, geom.Point) error { panic("zoom exploded") }
func (panicky) ResetZoom() error               { return errors.New("no reset") }
func (panicky) ResetPan() error                { return nil }
func (panicky) Center() error                  { return nil }
func (panicky) Fit() error                     { return nil }
func (panicky) DisableZoom() error             { return nil }
func (panicky) DisablePan() error              { return nil }
func (panicky) Destroy() error                 { return nil }

type stubLibrary struct {
	available bool
}

func (l stubLibrary) Available() bool { return l.available }

func (l stubLibrary) New(dom.Element, Options) (Instance, error) {
	return panicky{}, nil
}

func TestGuardConvertsPanics(t *testing.T) {
	inst := Guard(panicky{})
	err := inst.Zoom(2, geom.Point{})
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("Zoom() error = %v, want *CallError", err)
	}
	if ce.Op != "zoom" || ce.Panic == nil {
		t.Errorf("CallError = %+v, want op zoom with panic value", ce)
	}
}

func TestGuardWrapsErrors(t *testing.T) {
	inst := Guard(panicky{})
	err := inst.ResetZoom()
	var ce *CallError
	if !errors.As(err, &ce) || ce.Op != "resetZoom" {
		t.Fatalf("ResetZoom() error = %v, want CallError for resetZoom", err)
	}
	if inst.Center() != nil {
		t.Error("Center() should succeed")
	}
}

func TestGuardIsIdempotent(t *testing.T) {
	once := Guard(panicky{})
	twice := Guard(once)
	if _, ok := Unwrap(twice).(panicky); !ok {
		t.Errorf("Unwrap(Guard(Guard(x))) = %T, want panicky", Unwrap(twice))
	}
	if Guard(nil) != nil {
		t.Error("Guard(nil) should be nil")
	}
}

func TestCreate(t *testing.T) {
	if _, err := Create(nil, nil, Options{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Create(nil lib) error = %v, want ErrUnavailable", err)
	}
	if _, err := Create(stubLibrary{available: false}, nil, Options{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Create(unavailable) error = %v, want ErrUnavailable", err)
	}
}
