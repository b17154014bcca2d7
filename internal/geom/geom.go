// Package geom holds the small set of layout-pixel types shared by the
// document, viewer and fit packages.
package geom

import "math"

// Point is a position in layout pixels.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in layout pixels.
type Size struct {
	Width  float64
	Height float64
}

// Center returns the geometric center of a box of this size anchored at the origin.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return !(s.Width > 0) || !(s.Height > 0)
}

// Box is an axis-aligned bounding box.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Size returns the box dimensions.
func (b Box) Size() Size {
	return Size{Width: b.Width, Height: b.Height}
}

// Degenerate reports whether the box cannot be used to compute a scale:
// a non-finite, zero or negative width or height.
func (b Box) Degenerate() bool {
	return !finitePositive(b.Width) || !finitePositive(b.Height)
}

// Union returns the smallest box that contains both b and o. A zero box is
// treated as empty.
func (b Box) Union(o Box) Box {
	if b == (Box{}) {
		return o
	}
	if o == (Box{}) {
		return b
	}
	minX := math.Min(b.X, o.X)
	minY := math.Min(b.Y, o.Y)
	maxX := math.Max(b.X+b.Width, o.X+o.Width)
	maxY := math.Max(b.Y+b.Height, o.Y+o.Height)
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
