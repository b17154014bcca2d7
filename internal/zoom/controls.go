package zoom

import (
	"github.com/ziadkadry99/diagram-zoom/internal/dom"
)

// Fullscreen trigger presentation.
const (
	fullscreenTitle = "View fullscreen"
	fullscreenGlyph = "⤢"
)

type style [][2]string

var fullscreenButtonStyle = style{
	{"position", "absolute"},
	{"top", "8px"},
	{"right", "8px"},
	{"z-index", "2"},
	{"border", "1px solid rgba(0,0,0,.2)"},
	{"border-radius", "4px"},
	{"background", "#fff"},
	{"padding", "2px 6px"},
	{"cursor", "pointer"},
}

func (s style) apply(el dom.Element) {
	for _, d := range s {
		el.SetStyle(d[0], d[1])
	}
}

// applyInteractivity puts b in its mode. Interactive bindings get a single
// fullscreen trigger; passive ones lose zoom and pan input and every control
// the viewer injected. Failures are logged and ignored.
func (c *Controller) applyInteractivity(b *Binding) {
	if b.Interactive {
		c.addFullscreenTrigger(b)
		return
	}
	if b.Viewer != nil {
		if err := b.Viewer.DisableZoom(); err != nil {
			c.logger.Debug("disable zoom failed", "key", b.Element.Key(), "err", err)
		}
		if err := b.Viewer.DisablePan(); err != nil {
			c.logger.Debug("disable pan failed", "key", b.Element.Key(), "err", err)
		}
	}
	if n := c.stripControls(b.Container); n > 0 {
		c.logger.Debug("controls removed", "key", b.Element.Key(), "count", n)
	}
}

// stripControls removes the viewer's control nodes under root and returns
// how many were removed.
func (c *Controller) stripControls(root dom.Element) (removed int) {
	if root == nil {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("control removal failed", "panic", r)
		}
	}()
	for _, sel := range c.controlSelectors() {
		for _, el := range root.QueryAll(sel) {
			el.Remove()
			removed++
		}
	}
	return removed
}

func (c *Controller) controlSelectors() []dom.Selector {
	var sels []dom.Selector
	if c.opts.ControlClassPrefix != "" {
		sels = append(sels, dom.ClassPrefix(c.opts.ControlClassPrefix))
	}
	if c.opts.ControlClass != "" {
		sels = append(sels, dom.Class(c.opts.ControlClass))
	}
	return sels
}

// addFullscreenTrigger adds the fullscreen button to b's container unless
// one is already there.
func (c *Controller) addFullscreenTrigger(b *Binding) {
	container := b.Container
	if container == nil || container.Query(dom.Class(c.opts.FullscreenClass)) != nil {
		return
	}
	btn := c.doc.CreateElement("button")
	btn.AddClass(c.opts.FullscreenClass)
	btn.SetAttr("type", "button")
	btn.SetAttr("title", fullscreenTitle)
	btn.SetText(fullscreenGlyph)
	fullscreenButtonStyle.apply(btn)
	btn.OnClick(func(dom.Element) {
		c.sched.Post(func() {
			c.guard("overlay", func() {
				if _, err := c.overlays.Open(container); err != nil {
					c.logger.Debug("overlay open failed", "key", b.Element.Key(), "err", err)
				}
			})
		})
	})
	if err := container.Append(btn); err != nil {
		c.logger.Debug("fullscreen trigger not added", "key", b.Element.Key(), "err", err)
	}
}
