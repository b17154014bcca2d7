package config

import (
	"go/build"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/ziadkadry99/diagram-zoom"

// terminalOnly are imports that do not build for js/wasm.
var terminalOnly = []string{
	"github.com/manifoldco/promptui",
	"github.com/chzyer/readline",
	"github.com/schollz/progressbar",
	"github.com/charmbracelet/lipgloss",
}

// TestBrowserRuntimeImports walks the packages the browser runtime pulls in
// under GOOS=js GOARCH=wasm and checks none of them imports a
// terminal-only library.
func TestBrowserRuntimeImports(t *testing.T) {
	ctx := build.Default
	ctx.GOOS = "js"
	ctx.GOARCH = "wasm"
	ctx.CgoEnabled = false

	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	var visit func(importPath string, from string)
	visit = func(importPath, from string) {
		if seen[importPath] {
			return
		}
		seen[importPath] = true
		dir := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(importPath, modulePath)))
		pkg, err := ctx.ImportDir(dir, 0)
		if err != nil {
			t.Fatalf("%s (imported by %s): %v", importPath, from, err)
		}
		for _, imp := range pkg.Imports {
			for _, bad := range terminalOnly {
				if imp == bad || strings.HasPrefix(imp, bad+"/") {
					t.Errorf("%s imports %s, which does not build for js/wasm", importPath, imp)
				}
			}
			if strings.HasPrefix(imp, modulePath+"/") {
				visit(imp, importPath)
			}
		}
	}
	visit(modulePath+"/cmd/diagramzoom-wasm", "")

	for _, want := range []string{
		modulePath + "/internal/config",
		modulePath + "/internal/jsbridge",
		modulePath + "/internal/zoom",
	} {
		if !seen[want] {
			t.Errorf("browser runtime no longer imports %s", want)
		}
	}
}
