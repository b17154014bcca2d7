//go:build js && wasm

// Command diagramzoom-wasm is the browser runtime. It reads its settings
// from window.diagramZoomConfig (a YAML or JSON string, or a plain object),
// starts the zoom controller on the live page and keeps running for the
// life of the page.
package main

import (
	"context"
	"syscall/js"

	"github.com/ziadkadry99/diagram-zoom/internal/config"
	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/jsbridge"
	"github.com/ziadkadry99/diagram-zoom/internal/loop"
	"github.com/ziadkadry99/diagram-zoom/internal/zoom"
)

func main() {
	cfg, err := loadConfig()
	logger := jsbridge.NewLogger(cfg.Level())
	if err != nil {
		logger.Warn("ignoring diagramZoomConfig", "err", err)
	}

	doc := jsbridge.NewDocument()
	l := loop.New(logger)
	ctrl := zoom.New(doc, jsbridge.NewLibrary(), l, cfg.ZoomOptions(), logger)
	stop := ctrl.Start()
	defer stop()

	// The runtime usually starts after DOMContentLoaded has fired.
	if doc.ReadyState() != "loading" {
		l.Post(ctrl.Scan)
	}

	// Mermaid may load after the runtime; retry the hook once the page is
	// complete.
	unhook, hooked := jsbridge.HookRenderer(ctrl.WatchRenderer)
	if !hooked {
		var cancel func()
		cancel = doc.On(dom.Complete, func() {
			l.Post(func() {
				if unhook, hooked = jsbridge.HookRenderer(ctrl.WatchRenderer); hooked {
					logger.Debug("renderer hooked late")
				}
				cancel()
			})
		})
	}
	defer func() { unhook() }()

	js.Global().Set("diagramZoomRescan", js.FuncOf(func(js.Value, []js.Value) any {
		l.Post(ctrl.Scan)
		return nil
	}))

	if err := l.Run(context.Background()); err != nil {
		logger.Error("loop stopped", "err", err)
	}
}

// loadConfig returns the page's settings, or the defaults when they are
// absent or invalid.
func loadConfig() (*config.Config, error) {
	raw := js.Global().Get("diagramZoomConfig")
	var data string
	switch raw.Type() {
	case js.TypeString:
		data = raw.String()
	case js.TypeObject:
		data = js.Global().Get("JSON").Call("stringify", raw).String()
	default:
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Parse([]byte(data))
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return config.DefaultConfig(), err
	}
	return cfg, nil
}
