package site

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RuntimeMarker is the name of the meta tag that marks a page as already
// carrying the runtime.
const RuntimeMarker = "diagram-zoom"

// Default script sources for the browser collaborators.
const (
	DefaultMermaidSrc = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
	DefaultPanZoomSrc = "https://cdn.jsdelivr.net/npm/svg-pan-zoom@3.6.1/dist/svg-pan-zoom.min.js"
)

// Runtime describes the scripts injected into a page. Paths are used as
// given; BasePath is prefixed to the local ones.
type Runtime struct {
	BasePath   string
	ConfigPath string // config.js, defines window.diagramZoomConfig
	WasmExec   string
	Wasm       string
	MermaidSrc string
	PanZoomSrc string
	// RenderDiagrams adds an inline script starting the renderer on load.
	RenderDiagrams bool
}

// DefaultRuntime returns the runtime layout written by the site generator
// and served by the dev server.
func DefaultRuntime() Runtime {
	return Runtime{
		ConfigPath:     "config.js",
		WasmExec:       "wasm_exec.js",
		Wasm:           "diagramzoom.wasm",
		MermaidSrc:     DefaultMermaidSrc,
		PanZoomSrc:     DefaultPanZoomSrc,
		RenderDiagrams: true,
	}
}

// WithBase returns a copy of r with local paths resolved against base.
func (r Runtime) WithBase(base string) Runtime {
	r.BasePath = base
	return r
}

const loaderJS = `(function () {
  if (!window.Go || !window.WebAssembly) { return; }
  var go = new Go();
  WebAssembly.instantiateStreaming(fetch(%q), go.importObject)
    .then(function (r) { go.run(r.instance); })
    .catch(function (e) { console.warn("diagram-zoom: runtime failed to load", e); });
})();`

const renderJS = `if (window.mermaid) { mermaid.initialize({ startOnLoad: true, securityLevel: "loose", theme: "neutral" }); }`

// nodes returns the elements to append to <head>, in load order.
func (r Runtime) nodes() []*html.Node {
	var out []*html.Node
	out = append(out, element(atom.Meta, "name", RuntimeMarker, "content", "1"))
	if r.ConfigPath != "" {
		out = append(out, script(r.BasePath+r.ConfigPath, ""))
	}
	if r.PanZoomSrc != "" {
		out = append(out, script(r.PanZoomSrc, ""))
	}
	if r.MermaidSrc != "" {
		out = append(out, script(r.MermaidSrc, ""))
		if r.RenderDiagrams {
			out = append(out, script("", renderJS))
		}
	}
	if r.WasmExec != "" && r.Wasm != "" {
		out = append(out, script(r.BasePath+r.WasmExec, ""))
		out = append(out, script("", fmt.Sprintf(loaderJS, r.BasePath+r.Wasm)))
	}
	return out
}

// Inject adds the runtime scripts to an HTML page. Pages that already
// carry the marker are returned unchanged.
func Inject(page []byte, r Runtime) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	head := find(doc, atom.Head)
	if head == nil {
		// html.Parse always synthesizes a head; guard anyway.
		return nil, fmt.Errorf("page has no head element")
	}
	if hasMarker(head) {
		return page, nil
	}
	for _, n := range r.nodes() {
		head.AppendChild(n)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}

func hasMarker(head *html.Node) bool {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Meta && attr(c, "name") == RuntimeMarker {
			return true
		}
	}
	return false
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// element builds an element with attribute key/value pairs.
func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func script(src, body string) *html.Node {
	var n *html.Node
	if src != "" {
		n = element(atom.Script, "src", src)
	} else {
		n = element(atom.Script)
	}
	if body != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	}
	return n
}
