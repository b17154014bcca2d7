package htmldoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
)

// The layout model is plain block flow without margins or padding:
//
//   - an element hidden by display:none or the hidden attribute (itself or
//     an ancestor), or detached from the document, has no layout;
//   - width is the explicit width (px, %, vw, vh or a bare number on SVG),
//     otherwise the parent's width, capped by max-width; <html> takes the
//     viewport width;
//   - height is the explicit height, otherwise the viewBox aspect ratio for
//     SVG, otherwise the sum of the children's heights; <html> takes the
//     viewport height.

func (d *Document) layout(n *html.Node) dom.Layout {
	if !isConnected(d.root, n) || !displayed(n) {
		return dom.Layout{}
	}
	return dom.Layout{
		ClientWidth:  d.width(n),
		ClientHeight: d.height(n),
		Rendered:     true,
	}
}

func displayed(n *html.Node) bool {
	for m := n; m != nil; m = m.Parent {
		if m.Type != html.ElementNode {
			continue
		}
		if hasAttr(m, "hidden") || strings.EqualFold(styleValue(m, "display"), "none") {
			return false
		}
	}
	return true
}

func (d *Document) width(n *html.Node) float64 {
	if n == nil || n.Type != html.ElementNode || n.Data == "html" {
		return d.viewport.Width
	}
	parent := d.width(n.Parent)
	w, ok := d.length(styleValue(n, "width"), parent)
	if !ok && n.Data == "svg" {
		w, ok = d.length(attr(n, "width"), parent)
	}
	if !ok {
		w = parent
	}
	if limit, ok := d.length(styleValue(n, "max-width"), parent); ok && w > limit {
		w = limit
	}
	return w
}

func (d *Document) height(n *html.Node) float64 {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	if n.Data == "html" {
		return d.viewport.Height
	}
	if h, ok := d.explicitHeight(n); ok {
		return h
	}
	if n.Data == "svg" {
		if vb, ok := viewBox(n); ok && vb.Width > 0 {
			return vb.Height * d.width(n) / vb.Width
		}
	}
	var sum float64
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && displayed(c) {
			sum += d.height(c)
		}
	}
	return sum
}

// explicitHeight resolves a declared height. Percentages resolve only
// against a parent whose height is itself declared.
func (d *Document) explicitHeight(n *html.Node) (float64, bool) {
	if n == nil || n.Type != html.ElementNode {
		return 0, false
	}
	if n.Data == "html" {
		return d.viewport.Height, true
	}
	parent, parentOK := d.explicitHeight(n.Parent)
	value := styleValue(n, "height")
	if value == "" && n.Data == "svg" {
		value = attr(n, "height")
	}
	if strings.HasSuffix(strings.TrimSpace(value), "%") && !parentOK {
		return 0, false
	}
	h, ok := d.length(value, parent)
	if !ok {
		return 0, false
	}
	if limit, ok := d.length(styleValue(n, "max-height"), parent); ok && h > limit {
		h = limit
	}
	return h, true
}

// length parses a CSS length. base resolves percentages.
func (d *Document) length(v string, base float64) (float64, bool) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" || v == "auto" || v == "none" {
		return 0, false
	}
	units := []struct {
		suffix string
		scale  float64
	}{
		{"px", 1},
		{"%", base / 100},
		{"vw", d.viewport.Width / 100},
		{"vh", d.viewport.Height / 100},
	}
	for _, u := range units {
		if strings.HasSuffix(v, u.suffix) {
			f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, u.suffix)), 64)
			if err != nil {
				return 0, false
			}
			return f * u.scale, true
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
