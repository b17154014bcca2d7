package htmldoc

import (
	"math"
	"testing"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

// flowchartSVG is shaped like Mermaid flowchart output: nodes centred on
// the origin inside translated groups, edges as paths, arrowheads in defs.
const flowchartSVG = `<html><body><div class="mermaid">
<svg viewBox="-8 -8 616 316">
  <g class="root">
    <defs><marker id="arrow"><path d="M0,0 L5000,5000"></path></marker></defs>
    <g class="nodes">
      <g class="node" transform="translate(50, 25)"><rect x="-50" y="-25" width="100" height="50"></rect></g>
      <g class="node" transform="translate(550,275)"><rect x="-50" y="-25" width="100" height="50"></rect></g>
    </g>
    <g class="edgePaths"><path d="M50,50C50,150,550,150,550,250"></path></g>
  </g>
</svg></div></body></html>`

func boxNear(a, b geom.Box) bool {
	const eps = 1e-6
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps && math.Abs(a.Height-b.Height) < eps
}

func TestBBoxAppliesTransforms(t *testing.T) {
	doc, err := ParseString(flowchartSVG)
	if err != nil {
		t.Fatal(err)
	}
	root := doc.Query(dom.Class("root"))
	got, err := root.BBox()
	if err != nil {
		t.Fatalf("BBox: %v", err)
	}
	want := geom.Box{Width: 600, Height: 300}
	if !boxNear(got, want) {
		t.Errorf("root BBox = %+v, want %+v", got, want)
	}

	// A node's own transform is outside its own user space.
	node := doc.Query(dom.Class("node"))
	got, err = node.BBox()
	if err != nil {
		t.Fatalf("node BBox: %v", err)
	}
	if !boxNear(got, geom.Box{X: -50, Y: -25, Width: 100, Height: 50}) {
		t.Errorf("node BBox = %+v, want the untranslated rect", got)
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in     string
		x, y   float64
		wx, wy float64
	}{
		{"", 3, 4, 3, 4},
		{"translate(10)", 3, 4, 13, 4},
		{"translate(10, 20)", 3, 4, 13, 24},
		{"scale(2)", 3, 4, 6, 8},
		{"scale(2 3)", 3, 4, 6, 12},
		{"translate(10,20) scale(2)", 3, 4, 16, 28},
		{"scale(2) translate(10,20)", 3, 4, 26, 48},
		{"rotate(90)", 1, 0, 0, 1},
		{"rotate(180, 5, 5)", 0, 0, 10, 10},
		{"matrix(1 0 0 1 7 -7)", 0, 0, 7, -7},
		{"skewX(45)", 0, 1, 1, 1},
		{"bogus(1) translate(1,1)", 0, 0, 1, 1},
	}
	for _, tt := range tests {
		x, y := parseTransform(tt.in).apply(tt.x, tt.y)
		if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
			t.Errorf("parseTransform(%q) maps (%v,%v) to (%v,%v), want (%v,%v)", tt.in, tt.x, tt.y, x, y, tt.wx, tt.wy)
		}
	}
}

func TestPathBounds(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want geom.Box
	}{
		{"absolute lines", "M10,10 L110,10 L110,60 Z", geom.Box{X: 10, Y: 10, Width: 100, Height: 50}},
		{"relative lines", "m10 10 l100 0 0 50 z", geom.Box{X: 10, Y: 10, Width: 100, Height: 50}},
		{"implicit lineto", "M0,0 100,0 100,100", geom.Box{Width: 100, Height: 100}},
		{"horizontal vertical", "M5 5 H25 V45 h-10 v-10", geom.Box{X: 5, Y: 5, Width: 20, Height: 40}},
		{"compact numbers", "M0-5L10.5.5", geom.Box{Y: -5, Width: 10.5, Height: 5.5}},
		{"exponent", "M0,0 L1e2,2E1", geom.Box{Width: 100, Height: 20}},
		// The curve peaks at y=75, well short of its control points at 100.
		{"cubic extrema", "M0,0 C0,100 100,100 100,0", geom.Box{Width: 100, Height: 75}},
		{"smooth cubic", "M0,0 C0,50 50,50 50,0 S100,-50 100,0", geom.Box{Width: 100, Y: -37.5, Height: 75}},
		{"quadratic", "M0,0 Q50,100 100,0", geom.Box{Width: 100, Height: 50}},
		{"half circle arc", "M0,0 A50,50 0 0 1 100,0", geom.Box{Y: -50, Width: 100, Height: 50}},
		{"compact arc flags", "M0,0 a50,50 0 01100,0", geom.Box{Y: -50, Width: 100, Height: 50}},
		{"garbage stops", "M0,0 L10,10 X 500,500", geom.Box{Width: 10, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bounds
			pathBounds(tt.d, identity, &b)
			if !b.ok {
				t.Fatal("no geometry")
			}
			got := b.box()
			const eps = 0.2 // arcs are sampled
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps ||
				math.Abs(got.Width-tt.want.Width) > eps || math.Abs(got.Height-tt.want.Height) > eps {
				t.Errorf("bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}
