// Package zoom is the viewport-fit and interaction lifecycle controller for
// diagrams embedded in documentation pages.
//
// A Controller discovers rendered diagram graphics, binds exactly one viewer
// to each, waits for the container to be laid out before the first fit,
// strips or enables interactive controls, and hosts fullscreen overlays. It
// talks to the page only through dom.Document, to the pan/zoom library only
// through viewer.Library, and runs all of its work as tasks on a
// loop.Scheduler. Every exported method other than Start and WatchRenderer
// must be called from a scheduler task.
package zoom

import (
	"github.com/charmbracelet/log"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/loop"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
)

// Controller drives diagram bindings for one document.
type Controller struct {
	doc    dom.Document
	lib    viewer.Library
	sched  loop.Scheduler
	opts   Options
	logger *log.Logger

	registry *Registry
	overlays *OverlayManager
	passes   int
}

// New returns a controller. lib may be nil or report itself unavailable;
// scans then bind nothing until it loads.
func New(doc dom.Document, lib viewer.Library, sched loop.Scheduler, opts Options, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		doc:      doc,
		lib:      lib,
		sched:    sched,
		opts:     opts,
		logger:   logger.WithPrefix("zoom"),
		registry: NewRegistry(),
	}
	c.overlays = newOverlayManager(c)
	return c
}

// Registry returns the binding side table.
func (c *Controller) Registry() *Registry { return c.registry }

// Overlays returns the fullscreen overlay manager.
func (c *Controller) Overlays() *OverlayManager { return c.overlays }

// Options returns the options the controller was created with.
func (c *Controller) Options() Options { return c.opts }

// Passes returns the number of discovery passes run so far.
func (c *Controller) Passes() int { return c.passes }

// Scan binds every diagram graphic under the content region, in document
// order. Bindings of detached graphics are pruned first. Graphics inside
// fullscreen overlays are left alone.
func (c *Controller) Scan() {
	c.guard("scan", func() {
		c.passes++
		if n := c.registry.Prune(); n > 0 {
			c.logger.Debug("pruned detached diagrams", "count", n)
		}
		root := c.contentRoot()
		if root == nil {
			return
		}
		for _, svg := range root.QueryAll(dom.TagWithin(c.opts.DiagramClass, "svg")) {
			if c.overlays.Owns(svg) {
				continue
			}
			c.attach(svg)
		}
	})
}

// Refit fits every binding whose first fit has run against the current
// geometry.
func (c *Controller) Refit() {
	c.guard("refit", func() {
		for _, b := range c.registry.All() {
			if !b.ready || !b.Element.Connected() {
				continue
			}
			c.refit(b)
		}
	})
}

// contentRoot is the content region, or the body when the page has none.
func (c *Controller) contentRoot() dom.Element {
	if c.opts.ContentClass != "" {
		if el := c.doc.Query(dom.Class(c.opts.ContentClass)); el != nil {
			return el
		}
	}
	return c.doc.Body()
}

// guard runs one pass, logging and swallowing a panic so later passes
// still run.
func (c *Controller) guard(pass string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("diagram zoom pass failed", "pass", pass, "panic", r)
		}
	}()
	fn()
}
