package zoom

// poll fits b once its container is visible. While it is not, the check is
// retried every VisibilityInterval up to VisibilityAttempts times; the check
// after the last retry fits regardless. A detached element ends polling.
func (c *Controller) poll(b *Binding) {
	if !b.Element.Connected() {
		c.logger.Debug("diagram detached while waiting for layout", "key", b.Element.Key())
		return
	}
	visible := b.Container != nil && b.Container.Layout().Visible()
	if !visible && b.Attempts < c.opts.VisibilityAttempts {
		b.Attempts++
		c.sched.After(c.opts.VisibilityInterval, func() {
			c.guard("poll", func() { c.poll(b) })
		})
		return
	}
	if !visible {
		c.logger.Debug("container never became visible, forcing fit", "key", b.Element.Key(), "attempts", b.Attempts)
	}
	c.firstFit(b)
}
