package zoom

import (
	"github.com/ziadkadry99/diagram-zoom/internal/dom"
)

// Registry is the side table of bindings, keyed by element identity. A
// binding stays registered while its element is connected; Prune drops the
// rest.
type Registry struct {
	bindings map[string]*Binding
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]*Binding)}
}

// Lookup returns the binding for el.
func (r *Registry) Lookup(el dom.Element) (*Binding, bool) {
	if el == nil {
		return nil, false
	}
	b, ok := r.bindings[el.Key()]
	return b, ok
}

// Add registers b. An existing binding for the same element is kept.
func (r *Registry) Add(b *Binding) bool {
	key := b.Element.Key()
	if _, ok := r.bindings[key]; ok {
		return false
	}
	r.bindings[key] = b
	r.order = append(r.order, key)
	return true
}

// Prune removes bindings whose element has left the document, destroying
// their viewers. It returns the number removed.
func (r *Registry) Prune() int {
	kept := r.order[:0]
	removed := 0
	for _, key := range r.order {
		b := r.bindings[key]
		if b.Element.Connected() {
			kept = append(kept, key)
			continue
		}
		if b.Viewer != nil {
			_ = b.Viewer.Destroy()
		}
		delete(r.bindings, key)
		removed++
	}
	r.order = kept
	return removed
}

// All returns the bindings in registration order.
func (r *Registry) All() []*Binding {
	out := make([]*Binding, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.bindings[key])
	}
	return out
}

// Len returns the number of bindings.
func (r *Registry) Len() int { return len(r.bindings) }
