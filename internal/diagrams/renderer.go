// Package diagrams is the boundary to the diagram renderer (Mermaid) and
// the rules for recognizing diagram sources in rendered markdown.
//
// The zoom controller needs one thing from the renderer: to learn when it
// (re)initializes, because new diagrams follow. Renderers that announce this
// implement Notifier; any other renderer is wrapped once with Intercept.
package diagrams

import "sync"

// Renderer initializes the diagram renderer with a host specific config.
type Renderer interface {
	Initialize(config any) error
}

// Notifier is a renderer that reports completed initializations.
type Notifier interface {
	OnInitialized(fn func()) (cancel func())
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(config any) error

func (f RendererFunc) Initialize(config any) error { return f(config) }

// Interceptor wraps a renderer and notifies listeners after each successful
// Initialize. A nil inner renderer counts as a successful no-op.
type Interceptor struct {
	next Renderer

	mu        sync.Mutex
	listeners []*listener
}

type listener struct{ fn func() }

var (
	_ Renderer = (*Interceptor)(nil)
	_ Notifier = (*Interceptor)(nil)
)

// Intercept wraps next.
func Intercept(next Renderer) *Interceptor {
	return &Interceptor{next: next}
}

// Initialize forwards to the wrapped renderer and, when it succeeds,
// notifies every listener. The renderer's error is returned unchanged.
func (i *Interceptor) Initialize(config any) error {
	if i.next != nil {
		if err := i.next.Initialize(config); err != nil {
			return err
		}
	}
	i.mu.Lock()
	ls := append([]*listener(nil), i.listeners...)
	i.mu.Unlock()
	for _, l := range ls {
		l.fn()
	}
	return nil
}

// OnInitialized registers fn. Listeners run synchronously inside
// Initialize, so fn should only schedule work.
func (i *Interceptor) OnInitialized(fn func()) func() {
	l := &listener{fn: fn}
	i.mu.Lock()
	i.listeners = append(i.listeners, l)
	i.mu.Unlock()
	return func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		for k, x := range i.listeners {
			if x == l {
				i.listeners = append(i.listeners[:k:k], i.listeners[k+1:]...)
				return
			}
		}
	}
}

// Unwrap returns the wrapped renderer.
func (i *Interceptor) Unwrap() Renderer { return i.next }

// Observe arranges for fn to run after r initializes. It returns the
// renderer the host must expose from now on: r itself when it is a
// Notifier, otherwise an Interceptor around it. A nil r hooks nothing.
func Observe(r Renderer, fn func()) (Renderer, func()) {
	if r == nil {
		return nil, func() {}
	}
	if n, ok := r.(Notifier); ok {
		return r, n.OnInitialized(fn)
	}
	ic := Intercept(r)
	return ic, ic.OnInitialized(fn)
}
