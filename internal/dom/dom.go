// Package dom describes the host document that diagram zoom runs against.
//
// Two hosts implement it: internal/jsbridge wraps the live browser DOM
// through syscall/js, and internal/dom/htmldoc provides an in-memory
// document parsed from HTML for the CLI and tests. The controller in
// internal/zoom only ever talks to these interfaces.
package dom

import (
	"errors"

	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

// ErrNoGeometry is returned by BBox when an element has no measurable geometry.
var ErrNoGeometry = errors.New("dom: element has no geometry")

// Event is a document or window lifecycle signal.
type Event int

const (
	// Ready fires once the document has been parsed.
	Ready Event = iota
	// Complete fires when the document ready state reaches "complete".
	Complete
	// HashChange fires on in-page hash navigation.
	HashChange
	// Resize fires when the window is resized.
	Resize
)

func (e Event) String() string {
	switch e {
	case Ready:
		return "ready"
	case Complete:
		return "complete"
	case HashChange:
		return "hashchange"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

// Layout is the measured box of an element.
type Layout struct {
	ClientWidth  float64
	ClientHeight float64
	// Rendered is false when the element or an ancestor is not displayed,
	// i.e. the element has no layout parent.
	Rendered bool
}

// Size returns the client dimensions.
func (l Layout) Size() geom.Size {
	return geom.Size{Width: l.ClientWidth, Height: l.ClientHeight}
}

// Visible reports whether the element has non-zero client size and a layout parent.
func (l Layout) Visible() bool {
	return l.ClientWidth > 0 && l.ClientHeight > 0 && l.Rendered
}

// Element is a node in the host document.
type Element interface {
	// Key is a stable identity for the underlying node. Two Element values
	// wrapping the same node return the same key.
	Key() string
	Tag() string
	// Parent returns the parent element, or nil for detached or root nodes.
	Parent() Element
	// Connected reports whether the element is still attached to the document.
	Connected() bool
	Layout() Layout
	// BBox returns the element's geometric bounding box in user units.
	BBox() (geom.Box, error)

	HasClass(name string) bool
	AddClass(name string)
	Attr(name string) string
	SetAttr(name, value string)
	Style(property string) string
	SetStyle(property, value string)
	SetText(text string)

	// Query returns the first descendant matching sel, or nil.
	Query(sel Selector) Element
	// QueryAll returns all descendants matching sel in document order.
	QueryAll(sel Selector) []Element
	Append(child Element) error
	Remove()
	// Clone returns a detached deep copy. Event handlers are not copied.
	Clone() Element
	// OnClick registers fn for clicks on the element or its descendants.
	// fn receives the element the click originated on.
	OnClick(fn func(target Element)) (cancel func())
}

// Document is the host document plus its window-level signals.
type Document interface {
	Body() Element
	// Query returns the first element in the document matching sel, or nil.
	Query(sel Selector) Element
	CreateElement(tag string) Element
	// On registers fn for a lifecycle event.
	On(ev Event, fn func()) (cancel func())
	// Observe calls fn whenever child nodes are added anywhere under root.
	Observe(root Element, fn func(added int)) (cancel func())
}

// Same reports whether a and b wrap the same node.
func Same(a, b Element) bool {
	return a != nil && b != nil && a.Key() == b.Key()
}

// Contains reports whether el is ancestor or equal to other.
func Contains(el, other Element) bool {
	for n := other; n != nil; n = n.Parent() {
		if Same(el, n) {
			return true
		}
	}
	return false
}
