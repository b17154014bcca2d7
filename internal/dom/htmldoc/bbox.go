package htmldoc

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

// bbox approximates getBBox from SVG attributes: the union of the
// descendants' shapes in the element's own user space, with each
// descendant's transform applied. Text without a sized box is not measured.
// An <svg> reports its viewBox when it has one.
func bbox(n *html.Node) (geom.Box, error) {
	if n.Data == "svg" {
		if vb, ok := viewBox(n); ok {
			return vb, nil
		}
	}
	var b bounds
	if n.Data != "svg" {
		addShape(&b, n, identity)
	}
	var walk func(*html.Node, matrix)
	walk = func(m *html.Node, parent matrix) {
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || unrendered[strings.ToLower(c.Data)] {
				continue
			}
			t := parent
			if v := attr(c, "transform"); v != "" {
				t = t.mult(parseTransform(v))
			}
			addShape(&b, c, t)
			walk(c, t)
		}
	}
	walk(n, identity)
	if !b.ok && n.Data == "svg" {
		w, wok := number(attr(n, "width"))
		h, hok := number(attr(n, "height"))
		if wok && hok {
			b.add(0, 0)
			b.add(w, h)
		}
	}
	if !b.ok {
		return geom.Box{}, dom.ErrNoGeometry
	}
	return b.box(), nil
}

// unrendered elements contribute nothing to a bounding box.
var unrendered = map[string]bool{
	"defs":           true,
	"marker":         true,
	"clippath":       true,
	"mask":           true,
	"pattern":        true,
	"symbol":         true,
	"lineargradient": true,
	"radialgradient": true,
	"filter":         true,
	"style":          true,
	"title":          true,
	"desc":           true,
}

// bounds accumulates points into a box.
type bounds struct {
	minX, minY, maxX, maxY float64
	ok                     bool
}

func (b *bounds) add(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	if !b.ok {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.ok = true
		return
	}
	b.minX, b.maxX = math.Min(b.minX, x), math.Max(b.maxX, x)
	b.minY, b.maxY = math.Min(b.minY, y), math.Max(b.maxY, y)
}

// addBox adds the four corners of box mapped through m.
func (b *bounds) addBox(box geom.Box, m matrix) {
	b.add(m.apply(box.X, box.Y))
	b.add(m.apply(box.X+box.Width, box.Y))
	b.add(m.apply(box.X, box.Y+box.Height))
	b.add(m.apply(box.X+box.Width, box.Y+box.Height))
}

func (b bounds) box() geom.Box {
	return geom.Box{X: b.minX, Y: b.minY, Width: b.maxX - b.minX, Height: b.maxY - b.minY}
}

// addShape adds the geometry of n, in the space m maps to.
func addShape(b *bounds, n *html.Node, m matrix) {
	if n.Data == "path" {
		pathBounds(attr(n, "d"), m, b)
		return
	}
	if box, ok := shapeBox(n); ok {
		b.addBox(box, m)
	}
}

func boundsOf(xs, ys []float64) (geom.Box, bool) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return geom.Box{}, false
	}
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	return geom.Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func viewBox(n *html.Node) (geom.Box, bool) {
	v := attr(n, "viewbox")
	if v == "" {
		v = attr(n, "viewBox")
	}
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 4 {
		return geom.Box{}, false
	}
	var vals [4]float64
	for i, f := range fields {
		x, ok := number(f)
		if !ok {
			return geom.Box{}, false
		}
		vals[i] = x
	}
	return geom.Box{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, true
}

func number(v string) (float64, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
