//go:build js && wasm

// Package jsbridge adapts the live browser page to the interfaces the zoom
// controller runs against: dom.Document over the DOM, viewer.Library over
// window.svgPanZoom and diagrams.Renderer over window.mermaid.
//
// Calls into JavaScript that throw surface as panics from syscall/js. The
// adapters convert the ones a caller can act on (appendChild, getBBox,
// svgPanZoom methods) into errors; the rest are left to the scheduler's
// recover guard.
package jsbridge

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"syscall/js"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// svgTags are created in the SVG namespace so they render inside graphics.
var svgTags = map[string]bool{
	"svg": true, "g": true, "rect": true, "circle": true, "ellipse": true,
	"line": true, "path": true, "polygon": true, "polyline": true, "text": true,
}

// ErrForeignElement is returned when an element from another host is
// appended to a browser element.
var ErrForeignElement = errors.New("jsbridge: element does not belong to the browser document")

// Document is the browser page.
type Document struct {
	window js.Value
	doc    js.Value

	mu   sync.Mutex
	keys js.Value // WeakMap from node to key
	next int
}

var _ dom.Document = (*Document)(nil)

// NewDocument wraps the global window and document.
func NewDocument() *Document {
	w := js.Global()
	return &Document{
		window: w,
		doc:    w.Get("document"),
		keys:   w.Get("WeakMap").New(),
	}
}

// ReadyState returns document.readyState.
func (d *Document) ReadyState() string {
	return d.doc.Get("readyState").String()
}

func (d *Document) Body() dom.Element { return d.wrap(d.doc.Get("body")) }

func (d *Document) Query(sel dom.Selector) dom.Element {
	return d.wrap(d.doc.Call("querySelector", sel.CSS()))
}

func (d *Document) CreateElement(tag string) dom.Element {
	if svgTags[tag] {
		return d.wrap(d.doc.Call("createElementNS", svgNamespace, tag))
	}
	return d.wrap(d.doc.Call("createElement", tag))
}

// On maps lifecycle events to DOM events: Ready to DOMContentLoaded,
// Complete to readystatechange reaching "complete", HashChange and Resize
// to the window events of the same name.
func (d *Document) On(ev dom.Event, fn func()) func() {
	switch ev {
	case dom.Ready:
		return listen(d.doc, "DOMContentLoaded", func(js.Value) { fn() })
	case dom.Complete:
		return listen(d.doc, "readystatechange", func(js.Value) {
			if d.ReadyState() == "complete" {
				fn()
			}
		})
	case dom.HashChange:
		return listen(d.window, "hashchange", func(js.Value) { fn() })
	case dom.Resize:
		return listen(d.window, "resize", func(js.Value) { fn() })
	}
	return func() {}
}

// Observe installs a MutationObserver on root's subtree. Without
// MutationObserver support nothing is observed.
func (d *Document) Observe(root dom.Element, fn func(added int)) func() {
	el, ok := root.(*Element)
	if !ok || el == nil {
		return func() {}
	}
	ctor := d.window.Get("MutationObserver")
	if ctor.Type() != js.TypeFunction {
		return func() {}
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		records := args[0]
		added := 0
		for i := 0; i < records.Length(); i++ {
			added += records.Index(i).Get("addedNodes").Get("length").Int()
		}
		fn(added)
		return nil
	})
	observer := ctor.New(cb)
	observer.Call("observe", el.v, map[string]any{"childList": true, "subtree": true})
	var once sync.Once
	return func() {
		once.Do(func() {
			observer.Call("disconnect")
			cb.Release()
		})
	}
}

// key returns the stable key of a node, assigning one on first sight.
func (d *Document) key(v js.Value) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if k := d.keys.Call("get", v); k.Type() == js.TypeString {
		return k.String()
	}
	d.next++
	k := "dz-" + strconv.Itoa(d.next)
	d.keys.Call("set", v, k)
	return k
}

// wrap returns nil for null and undefined so callers can compare against a
// nil dom.Element.
func (d *Document) wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{d: d, v: v}
}

// listen adds an event listener and returns a function removing it.
func listen(target js.Value, event string, fn func(ev js.Value)) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	target.Call("addEventListener", event, cb)
	var once sync.Once
	return func() {
		once.Do(func() {
			target.Call("removeEventListener", event, cb)
			cb.Release()
		})
	}
}

// catch converts a JavaScript exception raised inside fn into an error.
func catch(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = fmt.Errorf("jsbridge: %s: %s", op, jsErr.Error())
				return
			}
			err = fmt.Errorf("jsbridge: %s: %v", op, r)
		}
	}()
	fn()
	return nil
}
