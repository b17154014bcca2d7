// Package fit computes and applies the scale that makes a diagram's content
// occupy its container.
package fit

import (
	"math"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
	"github.com/ziadkadry99/diagram-zoom/internal/viewer"
)

// Params tunes the fit formula.
type Params struct {
	// Margin multiplies the exact-fit scale to leave a small visual border.
	Margin float64
	// MinScale is the floor applied to the computed scale.
	MinScale float64
}

// DefaultParams returns the margin and floor used for documentation pages.
func DefaultParams() Params {
	return Params{Margin: 0.98, MinScale: 0.01}
}

// Mode says how a fit was (or would be) applied.
type Mode int

const (
	// Skipped means nothing was applied: no container or no viewer.
	Skipped Mode = iota
	// Formula means the computed scale was applied at the anchor.
	Formula
	// Native means the viewer's own fit+center was used.
	Native
)

func (m Mode) String() string {
	switch m {
	case Formula:
		return "formula"
	case Native:
		return "native"
	default:
		return "skipped"
	}
}

// Result is a computed fit. Scale and Anchor are only meaningful in Formula mode.
type Result struct {
	Mode   Mode
	Scale  float64
	Anchor geom.Point
}

// Compute returns the fit of bbox into a container of the given size.
// A container without layout or a degenerate bbox yields Native.
func Compute(container geom.Size, bbox geom.Box, p Params) Result {
	if container.Empty() || bbox.Degenerate() {
		return Result{Mode: Native}
	}
	scale := math.Min(container.Width/bbox.Width, container.Height/bbox.Height) * p.Margin
	scale = math.Max(p.MinScale, scale)
	return Result{Mode: Formula, Scale: scale, Anchor: container.Center()}
}

// ContentBox returns the bounding box of the diagram's innermost drawable
// group, falling back to the graphic's own box when the group is absent or
// degenerate.
func ContentBox(svg dom.Element) (geom.Box, bool) {
	if svg == nil {
		return geom.Box{}, false
	}
	if g := svg.Query(dom.Tag("g")); g != nil {
		if b, err := g.BBox(); err == nil && !b.Degenerate() {
			return b, true
		}
	}
	b, err := svg.BBox()
	if err != nil || b.Degenerate() {
		return geom.Box{}, false
	}
	return b, true
}

// Apply fits svg into its container through inst. The fit is absolute: zoom
// and pan are reset before the computed scale is applied at the container
// center. Whenever geometry is unusable or any viewer call fails, the
// viewer's own fit+center is used instead. Apply never fails.
func Apply(svg dom.Element, inst viewer.Instance, p Params) (res Result) {
	if svg == nil || inst == nil {
		return Result{Mode: Skipped}
	}
	container := svg.Parent()
	if container == nil {
		return Result{Mode: Skipped}
	}
	defer func() {
		if r := recover(); r != nil {
			native(inst)
			res = Result{Mode: Native}
		}
	}()

	box, _ := ContentBox(svg)
	res = Compute(container.Layout().Size(), box, p)
	if res.Mode == Native {
		native(inst)
		return res
	}
	if err := formula(inst, res); err != nil {
		native(inst)
		return Result{Mode: Native}
	}
	return res
}

func formula(inst viewer.Instance, res Result) error {
	if err := inst.ResetZoom(); err != nil {
		return err
	}
	if err := inst.ResetPan(); err != nil {
		return err
	}
	if err := inst.Zoom(res.Scale, res.Anchor); err != nil {
		return err
	}
	return inst.Center()
}

// native runs the viewer's own fit+center, ignoring failures.
func native(inst viewer.Instance) {
	defer func() { _ = recover() }()
	_ = inst.Fit()
	_ = inst.Center()
}
