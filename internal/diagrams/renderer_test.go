package diagrams

import (
	"errors"
	"testing"
)

type recordingRenderer struct {
	configs []any
	err     error
}

func (r *recordingRenderer) Initialize(config any) error {
	r.configs = append(r.configs, config)
	return r.err
}

type notifyingRenderer struct {
	recordingRenderer
	fns []func()
}

func (r *notifyingRenderer) OnInitialized(fn func()) func() {
	r.fns = append(r.fns, fn)
	return func() { r.fns = nil }
}

func TestInterceptNotifiesAfterSuccess(t *testing.T) {
	inner := &recordingRenderer{}
	ic := Intercept(inner)
	calls := 0
	cancel := ic.OnInitialized(func() { calls++ })

	if err := ic.Initialize("cfg"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if len(inner.configs) != 1 || inner.configs[0] != "cfg" {
		t.Errorf("inner renderer got %v, want [cfg]", inner.configs)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	cancel()
	_ = ic.Initialize(nil)
	if calls != 1 {
		t.Errorf("calls after cancel = %d, want 1", calls)
	}
	if ic.Unwrap() != inner {
		t.Error("Unwrap does not return the inner renderer")
	}
}

func TestInterceptSkipsNotifyOnError(t *testing.T) {
	boom := errors.New("boom")
	ic := Intercept(&recordingRenderer{err: boom})
	calls := 0
	ic.OnInitialized(func() { calls++ })
	if err := ic.Initialize(nil); !errors.Is(err, boom) {
		t.Errorf("Initialize error = %v, want boom", err)
	}
	if calls != 0 {
		t.Errorf("listener ran after a failed initialization")
	}
}

func TestInterceptNilRenderer(t *testing.T) {
	ic := Intercept(nil)
	calls := 0
	ic.OnInitialized(func() { calls++ })
	if err := ic.Initialize(nil); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestObserve(t *testing.T) {
	t.Run("absent renderer", func(t *testing.T) {
		r, cancel := Observe(nil, func() { t.Error("should never run") })
		if r != nil {
			t.Errorf("Observe(nil) returned %v", r)
		}
		cancel()
	})

	t.Run("notifier is used directly", func(t *testing.T) {
		n := &notifyingRenderer{}
		r, _ := Observe(n, func() {})
		if r != Renderer(n) {
			t.Error("a Notifier should be returned unwrapped")
		}
		if len(n.fns) != 1 {
			t.Errorf("registered %d listeners, want 1", len(n.fns))
		}
	})

	t.Run("plain renderer is intercepted", func(t *testing.T) {
		calls := 0
		r, _ := Observe(RendererFunc(func(any) error { return nil }), func() { calls++ })
		if _, ok := r.(*Interceptor); !ok {
			t.Fatalf("Observe returned %T, want *Interceptor", r)
		}
		_ = r.Initialize(nil)
		_ = r.Initialize(nil)
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})
}
