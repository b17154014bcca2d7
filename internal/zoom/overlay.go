package zoom

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/loop"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
)

// ErrNoBody is returned by Open when the document has no body to host the
// overlay.
var ErrNoBody = errors.New("zoom: document has no body")

var (
	backdropStyle = style{
		{"position", "fixed"},
		{"left", "0"},
		{"top", "0"},
		{"right", "0"},
		{"bottom", "0"},
		{"width", "100vw"},
		{"height", "100vh"},
		{"background", "rgba(0,0,0,0.7)"},
		{"z-index", "9999"},
		{"display", "flex"},
		{"align-items", "center"},
		{"justify-content", "center"},
	}
	frameStyle = style{
		{"background", "#fff"},
		{"max-width", "95vw"},
		{"max-height", "95vh"},
		{"width", "95vw"},
		{"height", "95vh"},
		{"overflow", "auto"},
		{"padding", "8px"},
		{"border-radius", "6px"},
	}
)

// Overlay is one open fullscreen view.
type Overlay struct {
	ID       string
	Backdrop dom.Element
	Frame    dom.Element
	Clone    dom.Element
	// Viewer is set once the settle delay has passed and the viewer was
	// created; it stays nil when that failed.
	Viewer viewer.Instance
	Fit    fit.Result

	closed bool
}

// Closed reports whether the overlay was dismissed.
func (o *Overlay) Closed() bool { return o.closed }

// OverlayManager opens and closes fullscreen overlays. Overlays share
// nothing with page bindings except the content copied at open time.
type OverlayManager struct {
	doc    dom.Document
	lib    viewer.Library
	sched  loop.Scheduler
	opts   Options
	logger *log.Logger
	strip  func(dom.Element) int

	active map[string]*Overlay
}

func newOverlayManager(c *Controller) *OverlayManager {
	return &OverlayManager{
		doc:    c.doc,
		lib:    c.lib,
		sched:  c.sched,
		opts:   c.opts,
		logger: c.logger,
		strip:  c.stripControls,
		active: make(map[string]*Overlay),
	}
}

// Open shows container fullscreen. The container is deep-cloned into a
// centered frame over a dimmed backdrop; a click on the backdrop itself
// closes it. The overlay's own viewer is created after the settle delay.
func (m *OverlayManager) Open(container dom.Element) (*Overlay, error) {
	body := m.doc.Body()
	if body == nil {
		return nil, ErrNoBody
	}
	o := &Overlay{ID: uuid.NewString()}

	o.Backdrop = m.doc.CreateElement("div")
	o.Backdrop.AddClass(OverlayClass)
	o.Backdrop.SetAttr("data-overlay-id", o.ID)
	backdropStyle.apply(o.Backdrop)

	o.Frame = m.doc.CreateElement("div")
	o.Frame.AddClass(OverlayFrameClass)
	frameStyle.apply(o.Frame)

	o.Clone = container.Clone()
	for _, nested := range o.Clone.QueryAll(dom.Class(m.opts.FullscreenClass)) {
		nested.Remove()
	}
	// Controls copied from the page viewer are inert in the clone.
	m.strip(o.Clone)

	if err := o.Frame.Append(o.Clone); err != nil {
		return nil, err
	}
	if err := o.Backdrop.Append(o.Frame); err != nil {
		return nil, err
	}
	o.Backdrop.OnClick(func(target dom.Element) {
		if dom.Same(target, o.Backdrop) {
			m.sched.Post(func() { m.Close(o) })
		}
	})
	if err := body.Append(o.Backdrop); err != nil {
		return nil, err
	}
	m.active[o.ID] = o
	m.logger.Debug("overlay opened", "overlay", o.ID)

	m.sched.After(m.opts.OverlaySettle, func() { m.activate(o) })
	return o, nil
}

// activate binds an independent viewer to the cloned graphic and fits it.
// Failures leave a static overlay.
func (m *OverlayManager) activate(o *Overlay) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Debug("overlay zoom init failed", "overlay", o.ID, "panic", r)
		}
	}()
	if o.closed {
		return
	}
	svg := o.Backdrop.Query(dom.TagWithin(m.opts.DiagramClass, "svg"))
	if svg == nil {
		m.logger.Debug("overlay has no diagram", "overlay", o.ID)
		return
	}
	inst, err := viewer.Create(m.lib, svg, m.opts.overlayViewer())
	if err != nil {
		m.logger.Debug("overlay zoom init failed", "overlay", o.ID, "err", err)
		return
	}
	o.Viewer = inst
	o.Fit = fit.Apply(svg, inst, m.opts.Fit)
}

// Close removes o from the document and releases its viewer.
func (m *OverlayManager) Close(o *Overlay) {
	if o == nil || o.closed {
		return
	}
	o.closed = true
	if o.Viewer != nil {
		_ = o.Viewer.Destroy()
	}
	o.Backdrop.Remove()
	delete(m.active, o.ID)
	m.logger.Debug("overlay closed", "overlay", o.ID)
}

// Owns reports whether el lies inside an open overlay.
func (m *OverlayManager) Owns(el dom.Element) bool {
	for _, o := range m.active {
		if dom.Contains(o.Backdrop, el) {
			return true
		}
	}
	return false
}

// Active returns the open overlays.
func (m *OverlayManager) Active() []*Overlay {
	out := make([]*Overlay, 0, len(m.active))
	for _, o := range m.active {
		out = append(out, o)
	}
	return out
}
