//go:build js && wasm

package jsbridge

import (
	"syscall/js"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

// Element is a DOM node.
type Element struct {
	d *Document
	v js.Value
}

var _ dom.Element = (*Element)(nil)

// Value returns the wrapped JavaScript value.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) Key() string { return e.d.key(e.v) }

// Tag returns the lower-case local name.
func (e *Element) Tag() string { return e.v.Get("localName").String() }

func (e *Element) Parent() dom.Element { return e.d.wrap(e.v.Get("parentElement")) }

func (e *Element) Connected() bool { return e.v.Get("isConnected").Bool() }

// Layout reads clientWidth and clientHeight. An HTML element is rendered
// when it has an offsetParent; an SVG element when it has client rects.
func (e *Element) Layout() dom.Layout {
	l := dom.Layout{
		ClientWidth:  e.v.Get("clientWidth").Float(),
		ClientHeight: e.v.Get("clientHeight").Float(),
	}
	if op := e.v.Get("offsetParent"); !op.IsUndefined() {
		l.Rendered = !op.IsNull() || e.d.window.Call("getComputedStyle", e.v).Get("position").String() == "fixed"
	} else {
		l.Rendered = e.v.Call("getClientRects").Length() > 0
	}
	return l
}

// BBox calls getBBox, which throws for elements that are not rendered.
func (e *Element) BBox() (geom.Box, error) {
	if e.v.Get("getBBox").Type() != js.TypeFunction {
		return geom.Box{}, dom.ErrNoGeometry
	}
	var b js.Value
	if err := catch("getBBox", func() { b = e.v.Call("getBBox") }); err != nil {
		return geom.Box{}, dom.ErrNoGeometry
	}
	return geom.Box{
		X:      b.Get("x").Float(),
		Y:      b.Get("y").Float(),
		Width:  b.Get("width").Float(),
		Height: b.Get("height").Float(),
	}, nil
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) AddClass(name string) { e.v.Get("classList").Call("add", name) }

func (e *Element) Attr(name string) string {
	a := e.v.Call("getAttribute", name)
	if a.IsNull() {
		return ""
	}
	return a.String()
}

func (e *Element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }

func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *Element) SetText(text string) { e.v.Set("textContent", text) }

func (e *Element) Query(sel dom.Selector) dom.Element {
	return e.d.wrap(e.v.Call("querySelector", sel.CSS()))
}

func (e *Element) QueryAll(sel dom.Selector) []dom.Element {
	list := e.v.Call("querySelectorAll", sel.CSS())
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.d.wrap(list.Index(i)))
	}
	return out
}

func (e *Element) Append(child dom.Element) error {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return ErrForeignElement
	}
	return catch("appendChild", func() { e.v.Call("appendChild", c.v) })
}

func (e *Element) Remove() { e.v.Call("remove") }

func (e *Element) Clone() dom.Element { return e.d.wrap(e.v.Call("cloneNode", true)) }

// OnClick listens for click events. The target passed to fn is the event
// target, which may be a descendant of e.
func (e *Element) OnClick(fn func(target dom.Element)) func() {
	return listen(e.v, "click", func(ev js.Value) {
		if ev.IsUndefined() {
			fn(e)
			return
		}
		target := e.d.wrap(ev.Get("target"))
		if target == nil {
			target = e
		}
		fn(target)
	})
}
