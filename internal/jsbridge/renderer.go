//go:build js && wasm

package jsbridge

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/ziadkadry99/diagram-zoom/internal/diagrams"
)

// Mermaid is window.mermaid seen as a diagrams.Renderer. Initialize calls
// the initialize function the page had before HookRenderer replaced it.
type Mermaid struct {
	obj  js.Value
	orig js.Value

	// result is what the last successful Initialize returned.
	result js.Value
}

var _ diagrams.Renderer = (*Mermaid)(nil)

// ThrownError is a JavaScript exception raised by a renderer call. Value is
// the thrown value, so it can be thrown again to the page.
type ThrownError struct {
	Op    string
	Value js.Value
}

func (e *ThrownError) Error() string {
	return "jsbridge: " + e.Op + ": " + js.Error{Value: e.Value}.Error()
}

// Initialize forwards config, which must be a js.Value or something
// js.ValueOf accepts.
func (m *Mermaid) Initialize(config any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = &ThrownError{Op: "mermaid.initialize", Value: jsErr.Value}
				return
			}
			err = fmt.Errorf("jsbridge: mermaid.initialize: %v", r)
		}
	}()
	m.result = js.Undefined()
	m.result = m.orig.Call("call", m.obj, config)
	return nil
}

// rethrowSource builds the function installed as mermaid.initialize. Go
// callbacks cannot throw, so the Go side reports the outcome and this
// wrapper returns the renderer's result or rethrows its exception.
const rethrowSource = `return function () {
  var r = fn.apply(this, arguments);
  if (r.threw) { throw r.error; }
  return r.value;
};`

// HookRenderer replaces window.mermaid.initialize with a function routed
// through watch, so every successful call is observed. The replacement
// returns what the original returned and lets its exceptions reach the
// caller. It reports false and hooks nothing when mermaid is not loaded.
// The returned function restores the original initialize.
func HookRenderer(watch func(diagrams.Renderer) (diagrams.Renderer, func())) (func(), bool) {
	obj := js.Global().Get("mermaid")
	if obj.Type() != js.TypeObject {
		return func() {}, false
	}
	orig := obj.Get("initialize")
	if orig.Type() != js.TypeFunction {
		return func() {}, false
	}
	m := &Mermaid{obj: obj, orig: orig}
	wrapped, cancel := watch(m)
	if wrapped == nil {
		return cancel, false
	}
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var cfg any = js.Undefined()
		if len(args) > 0 {
			cfg = args[0]
		}
		err := wrapped.Initialize(cfg)
		var thrown *ThrownError
		if errors.As(err, &thrown) {
			return map[string]any{"threw": true, "error": thrown.Value}
		}
		if err != nil {
			js.Global().Get("console").Call("debug", "diagram-zoom: "+err.Error())
		}
		return map[string]any{"threw": false, "value": m.result}
	})
	installed := js.Global().Get("Function").New("fn", rethrowSource).Invoke(fn)
	obj.Set("initialize", installed)
	return func() {
		obj.Set("initialize", orig)
		cancel()
		fn.Release()
	}, true
}
