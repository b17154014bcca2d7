// Package htmldoc is an in-memory dom.Document built on golang.org/x/net/html.
//
// It stands in for a browser when auditing built documentation pages and in
// tests. Queries are evaluated with htmlquery, layout comes from a small
// block-flow model (see layout.go) and geometry from SVG attributes (see
// bbox.go). Lifecycle events, clicks and mutation notifications are
// delivered synchronously by Dispatch, Click and the mutating methods.
package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

// DefaultViewport is the window size used when none is given.
var DefaultViewport = geom.Size{Width: 1280, Height: 800}

// ErrForeignElement is returned when an element from another document or
// host is passed to Append.
var ErrForeignElement = errors.New("htmldoc: element does not belong to this document")

// ErrCycle is returned when appending an element into its own subtree.
var ErrCycle = errors.New("htmldoc: cannot append an ancestor into its descendant")

// svgTags are created in the SVG namespace by CreateElement.
var svgTags = map[string]bool{
	"svg": true, "g": true, "rect": true, "circle": true, "ellipse": true,
	"line": true, "path": true, "polygon": true, "polyline": true, "text": true,
}

// Document is a parsed HTML document.
type Document struct {
	root      *html.Node
	viewport  geom.Size
	elements  map[*html.Node]*Element
	handlers  map[dom.Event][]*listener
	observers []*observer
	clicks    map[*html.Node][]*clickListener
}

type listener struct{ fn func() }

type observer struct {
	root *html.Node
	fn   func(added int)
}

type clickListener struct{ fn func(dom.Element) }

// Option configures a Document.
type Option func(*Document)

// WithViewport sets the window size the layout model resolves against.
func WithViewport(width, height float64) Option {
	return func(d *Document) {
		d.viewport = geom.Size{Width: width, Height: height}
	}
}

// Parse reads an HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	d := &Document{
		root:     root,
		viewport: DefaultViewport,
		elements: make(map[*html.Node]*Element),
		handlers: make(map[dom.Event][]*listener),
		clicks:   make(map[*html.Node][]*clickListener),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Viewport returns the window size.
func (d *Document) Viewport() geom.Size { return d.viewport }

// Render writes the current document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Body returns the <body> element.
func (d *Document) Body() dom.Element {
	return d.element(htmlquery.FindOne(d.root, "//body"))
}

// Query returns the first element in the document matching sel.
func (d *Document) Query(sel dom.Selector) dom.Element {
	return d.element(queryOne(d.root, sel))
}

// QueryAll returns every element in the document matching sel.
func (d *Document) QueryAll(sel dom.Selector) []dom.Element {
	return d.elementsOf(queryAll(d.root, sel))
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if svgTags[tag] {
		n.Namespace = "svg"
	}
	return d.wrap(n)
}

// On registers fn for ev. Handlers run synchronously from Dispatch.
func (d *Document) On(ev dom.Event, fn func()) func() {
	l := &listener{fn: fn}
	d.handlers[ev] = append(d.handlers[ev], l)
	return func() {
		list := d.handlers[ev]
		for i, x := range list {
			if x == l {
				d.handlers[ev] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Observe calls fn when nodes are appended anywhere under root.
func (d *Document) Observe(root dom.Element, fn func(added int)) func() {
	r, ok := root.(*Element)
	if !ok || r.doc != d {
		return func() {}
	}
	o := &observer{root: r.node, fn: fn}
	d.observers = append(d.observers, o)
	return func() {
		for i, x := range d.observers {
			if x == o {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every registered handler.
func (d *Document) Dispatch(ev dom.Event) {
	for _, l := range append([]*listener(nil), d.handlers[ev]...) {
		l.fn()
	}
}

// Click delivers a click originating on target, bubbling up through its
// ancestors.
func (d *Document) Click(target dom.Element) {
	t, ok := target.(*Element)
	if !ok || t.doc != d {
		return
	}
	for n := t.node; n != nil; n = n.Parent {
		for _, l := range append([]*clickListener(nil), d.clicks[n]...) {
			l.fn(t)
		}
	}
}

// notifyAdded tells observers whose root contains parent that count nodes
// were added under parent.
func (d *Document) notifyAdded(parent *html.Node, count int) {
	if count == 0 || !isConnected(d.root, parent) {
		return
	}
	for _, o := range append([]*observer(nil), d.observers...) {
		if isAncestorOrSelf(o.root, parent) {
			o.fn(count)
		}
	}
}

func (d *Document) wrap(n *html.Node) *Element {
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n, key: uuid.NewString()}
	d.elements[n] = e
	return e
}

// element wraps n, keeping a nil node a nil interface.
func (d *Document) element(n *html.Node) dom.Element {
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

func (d *Document) elementsOf(nodes []*html.Node) []dom.Element {
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

func queryOne(top *html.Node, sel dom.Selector) *html.Node {
	n, err := htmlquery.Query(top, sel.XPath())
	if err != nil {
		return nil
	}
	return n
}

func queryAll(top *html.Node, sel dom.Selector) []*html.Node {
	nodes, err := htmlquery.QueryAll(top, sel.XPath())
	if err != nil {
		return nil
	}
	return nodes
}

func isConnected(root, n *html.Node) bool {
	return isAncestorOrSelf(root, n)
}

func isAncestorOrSelf(ancestor, n *html.Node) bool {
	for m := n; m != nil; m = m.Parent {
		if m == ancestor {
			return true
		}
	}
	return false
}
