package zoom

import (
	"time"

	"github.com/ziadkadry99/diagram-zoom/internal/diagrams"
	"github.com/ziadkadry99/diagram-zoom/internal/dom"
)

// Start registers the rescan triggers and returns a function that removes
// them:
//
//	document ready, ready state complete   scan
//	hash change (HashChangeDelay)          scan, then refit
//	window resize (ResizeDelay)            refit only
//	nodes added under the content region   scan after MutationDelay
//
// Start may be called from any goroutine; the passes themselves run on the
// scheduler.
func (c *Controller) Start() (stop func()) {
	var cancels []func()
	on := func(ev dom.Event, delay time.Duration, fn func()) {
		cancels = append(cancels, c.doc.On(ev, func() {
			c.sched.After(delay, fn)
		}))
	}
	on(dom.Ready, 0, c.Scan)
	on(dom.Complete, 0, c.Scan)
	on(dom.HashChange, c.opts.HashChangeDelay, func() {
		c.Scan()
		c.Refit()
	})
	on(dom.Resize, c.opts.ResizeDelay, c.Refit)

	if c.opts.ContentClass != "" {
		if content := c.doc.Query(dom.Class(c.opts.ContentClass)); content != nil {
			cancels = append(cancels, c.doc.Observe(content, func(added int) {
				if added > 0 {
					c.sched.After(c.opts.MutationDelay, c.Scan)
				}
			}))
		}
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// WatchRenderer schedules a scan RendererDelay after each successful
// initialization of r. It returns the renderer the host must expose in
// place of r (see diagrams.Observe) and a cancel function. A nil renderer
// is not hooked.
func (c *Controller) WatchRenderer(r diagrams.Renderer) (diagrams.Renderer, func()) {
	return diagrams.Observe(r, func() {
		c.sched.After(c.opts.RendererDelay, c.Scan)
	})
}
