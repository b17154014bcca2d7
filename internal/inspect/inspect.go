// Package inspect runs the zoom lifecycle headlessly over built pages and
// reports what happened to every diagram: whether it was bound, how many
// visibility retries it took, how it was fitted and which controls remain.
package inspect

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/dom/htmldoc"
	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/loop"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer/panzoom"
	"github.com/ziadkadry99/diagram-zoom/internal/zoom"
)

// Options configures a run.
type Options struct {
	Zoom           zoom.Options
	ViewportWidth  float64
	ViewportHeight float64
	// Overlay opens and closes a fullscreen overlay for the first
	// interactive diagram of each page.
	Overlay bool
	Logger  *log.Logger
}

// Diagram is the outcome for one diagram.
type Diagram struct {
	Index    int
	Bound    bool
	Ready    bool
	Attempts int
	Fits     int
	Mode     fit.Mode
	// Scale is the viewer's scale after the lifecycle.
	Scale    float64
	Controls int
	Trigger  bool
}

// Overlay is the outcome of the overlay check.
type Overlay struct {
	Opened bool
	Mode   fit.Mode
	Scale  float64
	Closed bool
}

// Page is the outcome for one page.
type Page struct {
	Path     string
	Passes   int
	Diagrams []Diagram
	Overlay  *Overlay
	// HTML is the document after the lifecycle.
	HTML []byte
}

// Problems counts diagrams that were not bound or fell back to the
// viewer's own fit.
func (p Page) Problems() int {
	n := 0
	for _, d := range p.Diagrams {
		if !d.Bound || d.Mode != fit.Formula {
			n++
		}
	}
	return n
}

// File inspects the HTML page at path.
func File(path string, opts Options) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, fmt.Errorf("reading page: %w", err)
	}
	doc, err := htmldoc.Parse(bytes.NewReader(data), viewport(opts)...)
	if err != nil {
		return Page{}, fmt.Errorf("parsing page: %w", err)
	}
	p := Document(doc, opts)
	p.Path = path
	return p, nil
}

func viewport(opts Options) []htmldoc.Option {
	if opts.ViewportWidth > 0 && opts.ViewportHeight > 0 {
		return []htmldoc.Option{htmldoc.WithViewport(opts.ViewportWidth, opts.ViewportHeight)}
	}
	return nil
}

// Document runs the lifecycle on doc: ready, complete, a hash change and a
// resize, each followed by running the scheduler until idle.
func Document(doc *htmldoc.Document, opts Options) Page {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	lib := panzoom.New(doc)
	sched := loop.NewVirtual(logger)
	ctrl := zoom.New(doc, lib, sched, opts.Zoom, logger)
	stop := ctrl.Start()
	defer stop()

	horizon := budget(opts.Zoom)
	for _, ev := range []dom.Event{dom.Ready, dom.Complete, dom.HashChange, dom.Resize} {
		doc.Dispatch(ev)
		sched.RunUntilIdle(horizon)
	}

	page := Page{Passes: ctrl.Passes()}
	for i, b := range ctrl.Registry().All() {
		page.Diagrams = append(page.Diagrams, describe(i, b, opts.Zoom))
	}

	if opts.Overlay && opts.Zoom.Interactive {
		page.Overlay = checkOverlay(doc, ctrl, sched, horizon)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err == nil {
		page.HTML = buf.Bytes()
	}
	return page
}

// budget is long enough for every delay the controller can schedule.
func budget(o zoom.Options) time.Duration {
	d := time.Duration(o.VisibilityAttempts+1) * o.VisibilityInterval
	for _, x := range []time.Duration{o.HashChangeDelay, o.ResizeDelay, o.MutationDelay, o.RendererDelay, o.OverlaySettle} {
		d += x
	}
	return d + time.Second
}

func describe(i int, b *zoom.Binding, o zoom.Options) Diagram {
	d := Diagram{
		Index:    i,
		Bound:    b.Viewer != nil,
		Ready:    b.Ready(),
		Attempts: b.Attempts,
		Fits:     b.Fits,
		Mode:     b.Last.Mode,
	}
	if inst, ok := viewer.Unwrap(b.Viewer).(*panzoom.Instance); ok {
		d.Scale = inst.State().Scale
	}
	if o.ControlClassPrefix != "" {
		d.Controls = len(b.Element.QueryAll(dom.ClassPrefix(o.ControlClassPrefix)))
	}
	if o.FullscreenClass != "" && b.Container != nil {
		d.Trigger = b.Container.Query(dom.Class(o.FullscreenClass)) != nil
	}
	return d
}

// checkOverlay clicks the first fullscreen trigger, lets the overlay
// settle, records its fit, then closes it by clicking the backdrop.
func checkOverlay(doc *htmldoc.Document, ctrl *zoom.Controller, sched *loop.Virtual, horizon time.Duration) *Overlay {
	var trigger dom.Element
	for _, b := range ctrl.Registry().All() {
		if b.Container == nil {
			continue
		}
		if t := b.Container.Query(dom.Class(ctrl.Options().FullscreenClass)); t != nil {
			trigger = t
			break
		}
	}
	if trigger == nil {
		return nil
	}
	doc.Click(trigger)
	sched.RunUntilIdle(horizon)

	active := ctrl.Overlays().Active()
	if len(active) == 0 {
		return &Overlay{}
	}
	o := active[0]
	res := &Overlay{Opened: true, Mode: o.Fit.Mode}
	if inst, ok := viewer.Unwrap(o.Viewer).(*panzoom.Instance); ok {
		res.Scale = inst.State().Scale
	}
	doc.Click(o.Backdrop)
	sched.RunUntilIdle(horizon)
	res.Closed = o.Closed()
	return res
}
