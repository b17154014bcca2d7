package htmldoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

// Element wraps one *html.Node. The document hands out a single wrapper per
// node, so pointer equality and Key agree.
type Element struct {
	doc  *Document
	node *html.Node
	key  string
}

var _ dom.Element = (*Element)(nil)

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

func (e *Element) Key() string { return e.key }

func (e *Element) Tag() string { return e.node.Data }

func (e *Element) Parent() dom.Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

func (e *Element) Connected() bool { return isConnected(e.doc.root, e.node) }

func (e *Element) Layout() dom.Layout { return e.doc.layout(e.node) }

func (e *Element) BBox() (geom.Box, error) { return bbox(e.node) }

func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(attr(e.node, "class")) {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	classes := strings.TrimSpace(attr(e.node, "class"))
	if classes != "" {
		classes += " "
	}
	setAttr(e.node, "class", classes+name)
}

func (e *Element) Attr(name string) string { return attr(e.node, name) }

func (e *Element) SetAttr(name, value string) { setAttr(e.node, name, value) }

func (e *Element) Style(property string) string { return styleValue(e.node, property) }

func (e *Element) SetStyle(property, value string) {
	decls := parseStyle(attr(e.node, "style"))
	found := false
	for i := range decls {
		if decls[i].property == property {
			decls[i].value = value
			found = true
		}
	}
	if !found {
		decls = append(decls, declaration{property: property, value: value})
	}
	setAttr(e.node, "style", formatStyle(decls))
}

func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text == "" {
		return
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	e.doc.notifyAdded(e.node, 1)
}

func (e *Element) Query(sel dom.Selector) dom.Element {
	return e.doc.element(queryOne(e.node, sel))
}

func (e *Element) QueryAll(sel dom.Selector) []dom.Element {
	return e.doc.elementsOf(queryAll(e.node, sel))
}

func (e *Element) Append(child dom.Element) error {
	c, ok := child.(*Element)
	if !ok || c.doc != e.doc {
		return ErrForeignElement
	}
	if isAncestorOrSelf(c.node, e.node) {
		return ErrCycle
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
	e.doc.notifyAdded(e.node, 1)
	return nil
}

func (e *Element) Remove() {
	if p := e.node.Parent; p != nil {
		p.RemoveChild(e.node)
	}
}

func (e *Element) Clone() dom.Element {
	return e.doc.wrap(cloneNode(e.node))
}

func (e *Element) OnClick(fn func(target dom.Element)) func() {
	l := &clickListener{fn: fn}
	d := e.doc
	d.clicks[e.node] = append(d.clicks[e.node], l)
	return func() {
		list := d.clicks[e.node]
		for i, x := range list {
			if x == l {
				d.clicks[e.node] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// cloneNode deep-copies n and its subtree into a detached tree.
func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneNode(ch))
	}
	return c
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

type declaration struct {
	property string
	value    string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{property: prop, value: strings.TrimSpace(val)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.property+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

func styleValue(n *html.Node, property string) string {
	value := ""
	for _, d := range parseStyle(attr(n, "style")) {
		if d.property == property {
			value = d.value
		}
	}
	return value
}
