package zoom

import (
	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
)

// Binding ties one diagram graphic to its viewer.
type Binding struct {
	Element   dom.Element
	Container dom.Element
	// Viewer is nil when the library refused the graphic.
	Viewer      viewer.Instance
	Interactive bool

	// Attempts counts visibility retries before the first fit.
	Attempts int
	// Fits counts applied fits, the first one included.
	Fits int
	Last fit.Result

	ready bool
}

// Ready reports whether the first fit has run.
func (b *Binding) Ready() bool { return b.ready }

// attach binds el unless it is already bound. The binding is registered
// before anything is deferred, so overlapping scans never bind twice. When
// the viewer library is not loaded nothing is recorded and a later scan
// retries.
func (c *Controller) attach(el dom.Element) {
	if _, ok := c.registry.Lookup(el); ok {
		return
	}
	if c.lib == nil || !c.lib.Available() {
		c.logger.Debug("viewer library not loaded", "key", el.Key())
		return
	}
	b := &Binding{
		Element:     el,
		Container:   el.Parent(),
		Interactive: c.opts.Interactive,
	}
	c.registry.Add(b)
	if b.Container != nil {
		b.Container.SetStyle("display", "block")
	}

	inst, err := viewer.Create(c.lib, el, c.opts.pageViewer(b.Interactive))
	if err != nil {
		c.logger.Debug("viewer init failed", "key", el.Key(), "err", err)
		return
	}
	b.Viewer = inst
	c.logger.Debug("diagram bound", "key", el.Key(), "interactive", b.Interactive)

	c.poll(b)
	if b.Interactive {
		c.applyInteractivity(b)
	}
}

// firstFit runs once per binding, when the poller gives up waiting or the
// container becomes visible.
func (c *Controller) firstFit(b *Binding) {
	c.refit(b)
	b.ready = true
	if !b.Interactive {
		c.applyInteractivity(b)
	}
}

// refit fits b against the current geometry. The viewer is never recreated.
func (c *Controller) refit(b *Binding) {
	if b.Viewer == nil {
		return
	}
	b.Last = fit.Apply(b.Element, b.Viewer, c.opts.Fit)
	b.Fits++
	c.logger.Debug("diagram fitted", "key", b.Element.Key(), "mode", b.Last.Mode, "scale", b.Last.Scale)
}
