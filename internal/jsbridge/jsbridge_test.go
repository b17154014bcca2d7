//go:build js && wasm

package jsbridge

import (
	"syscall/js"
	"testing"

	"github.com/ziadkadry99/diagram-zoom/internal/diagrams"
)

// installMermaid sets window.mermaid to an object whose initialize runs
// body with the config as cfg.
func installMermaid(t *testing.T, body string) {
	t.Helper()
	g := js.Global()
	prev := g.Get("mermaid")
	obj := g.Get("Object").New()
	obj.Set("initialize", g.Get("Function").New("cfg", body))
	g.Set("mermaid", obj)
	t.Cleanup(func() { g.Set("mermaid", prev) })
}

// callInitialize calls window.mermaid.initialize from JavaScript and
// returns its result, or the caught exception.
func callInitialize(cfg any) (result js.Value, caught js.Value) {
	call := js.Global().Get("Function").New("cfg", `try {
  return { value: window.mermaid.initialize(cfg) };
} catch (e) {
  return { caught: e };
}`)
	out := call.Invoke(cfg)
	return out.Get("value"), out.Get("caught")
}

func TestHookRendererKeepsResult(t *testing.T) {
	installMermaid(t, `return cfg.theme + "-ok";`)
	calls := 0
	restore, ok := HookRenderer(func(r diagrams.Renderer) (diagrams.Renderer, func()) {
		return diagrams.Observe(r, func() { calls++ })
	})
	if !ok {
		t.Fatal("renderer was not hooked")
	}
	defer restore()

	result, caught := callInitialize(map[string]any{"theme": "neutral"})
	if !caught.IsUndefined() {
		t.Fatalf("unexpected exception: %v", caught)
	}
	if result.Type() != js.TypeString || result.String() != "neutral-ok" {
		t.Errorf("initialize returned %v, want neutral-ok", result)
	}
	if calls != 1 {
		t.Errorf("listener ran %d times, want 1", calls)
	}
}

func TestHookRendererRethrows(t *testing.T) {
	installMermaid(t, `throw new Error("bad config");`)
	calls := 0
	restore, ok := HookRenderer(func(r diagrams.Renderer) (diagrams.Renderer, func()) {
		return diagrams.Observe(r, func() { calls++ })
	})
	if !ok {
		t.Fatal("renderer was not hooked")
	}
	defer restore()

	_, caught := callInitialize(map[string]any{})
	if caught.IsUndefined() {
		t.Fatal("exception from initialize did not reach the caller")
	}
	if msg := caught.Get("message").String(); msg != "bad config" {
		t.Errorf("caught %q, want the original exception", msg)
	}
	if calls != 0 {
		t.Errorf("listener ran %d times after a failed initialize", calls)
	}
}

func TestObserveWithoutMutationObserver(t *testing.T) {
	g := js.Global()
	prev := g.Get("MutationObserver")
	g.Set("MutationObserver", js.Undefined())
	defer g.Set("MutationObserver", prev)

	d := NewDocument()
	root := &Element{v: g.Get("Object").New(), d: d}
	cancel := d.Observe(root, func(int) { t.Error("observer callback ran") })
	if cancel == nil {
		t.Fatal("Observe returned a nil cancel")
	}
	cancel()
}
