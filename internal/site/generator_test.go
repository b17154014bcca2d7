package site

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
)

func TestBuildTree(t *testing.T) {
	paths := []string{
		"index.md",
		"guide/setup.md",
		"guide/advanced/tuning.md",
		"reference/config.md",
	}

	tree := BuildTree(paths, map[string]string{"guide/setup.md": "Getting Set Up"})

	if tree.Name != "docs" || !tree.IsDir {
		t.Fatalf("root = %q (dir=%v), want docs dir", tree.Name, tree.IsDir)
	}
	// Directories first: guide, reference, then index.md.
	if len(tree.Children) != 3 {
		t.Fatalf("root children = %d, want 3", len(tree.Children))
	}
	names := []string{tree.Children[0].Name, tree.Children[1].Name, tree.Children[2].Name}
	if strings.Join(names, ",") != "guide,reference,index.md" {
		t.Errorf("root children = %v", names)
	}

	guide := tree.Children[0]
	if guide.Title != "Guide" {
		t.Errorf("guide title = %q, want Guide", guide.Title)
	}
	if len(guide.Children) != 2 || !guide.Children[0].IsDir || guide.Children[1].Title != "Getting Set Up" {
		t.Errorf("guide children not ordered dirs first with titles: %+v", guide.Children)
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	if tree := BuildTree(nil, nil); len(tree.Children) != 0 {
		t.Errorf("empty tree children = %d, want 0", len(tree.Children))
	}
}

func TestTreeToHTML(t *testing.T) {
	tree := BuildTree([]string{"index.md", "guide/setup.md", "a_b.md"}, nil)
	out := tree.ToHTML("guide/setup.md", "../")

	for _, want := range []string{
		`<a href="../index.html">Home</a>`,
		`<a href="../guide/setup.html" class="active">setup</a>`,
		`<a href="../a_b.html">a_b</a>`,
		`<span>Guide</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree HTML missing %s:\n%s", want, out)
		}
	}
	if strings.Count(out, "index.html") != 1 {
		t.Error("index page should only appear as the Home link")
	}
}

func TestPagePaths(t *testing.T) {
	tests := []struct{ in, page, base string }{
		{"index.md", "index.html", ""},
		{"guide/setup.md", "guide/setup.html", "../"},
		{"a/b/c.markdown", "a/b/c.html", "../../"},
		{"raw.html", "raw.html", ""},
	}
	for _, tc := range tests {
		if got := pagePath(tc.in); got != tc.page {
			t.Errorf("pagePath(%q) = %q, want %q", tc.in, got, tc.page)
		}
		if got := basePathFor(pagePath(tc.in)); got != tc.base {
			t.Errorf("basePathFor(%q) = %q, want %q", tc.in, got, tc.base)
		}
	}
}

func TestFormatDirName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"guide", "Guide"},
		{"getting-started", "Getting Started"},
		{"api_reference", "Api Reference"},
	}
	for _, tc := range tests {
		if got := formatDirName(tc.in); got != tc.want {
			t.Errorf("formatDirName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractTitle(t *testing.T) {
	if got := extractTitle("intro\n# Real Title\n## Sub", "x.md"); got != "Real Title" {
		t.Errorf("extractTitle = %q", got)
	}
	if got := extractTitle("no heading", "guide/setup.md"); got != "setup" {
		t.Errorf("extractTitle fallback = %q", got)
	}
}

func TestRewriteMDLinks(t *testing.T) {
	in := `<a href="setup.md">x</a> <a href="ref.md#opts">y</a>`
	want := `<a href="setup.html">x</a> <a href="ref.html#opts">y</a>`
	if got := rewriteMDLinks(in); got != want {
		t.Errorf("rewriteMDLinks = %q, want %q", got, want)
	}
}

func convert(t *testing.T, src string) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(DiagramExtension))
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return buf.String()
}

func TestDiagramExtension(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		notWant string
	}{
		{
			name: "mermaid fence",
			src:  "```mermaid\ngraph TD\n  A --> B\n```\n",
			want: "<div class=\"mermaid\">graph TD\n  A --&gt; B\n</div>",
		},
		{
			name: "extra classes are kept",
			src:  "```mermaid .wide .tall\nflowchart LR\n```\n",
			want: `<div class="mermaid wide tall">flowchart LR`,
		},
		{
			name: "keyword without language",
			src:  "```\nsequenceDiagram\n  A->>B: hi\n```\n",
			want: `<div class="mermaid">sequenceDiagram`,
		},
		{
			name:    "other language is left alone",
			src:     "```python\npie = 3.14\n```\n",
			want:    `<code class="language-python">`,
			notWant: `class="mermaid"`,
		},
		{
			name:    "plain fence without keyword",
			src:     "```\necho hi\n```\n",
			want:    "<pre><code>echo hi",
			notWant: `class="mermaid"`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := convert(t, tc.src)
			if !strings.Contains(out, tc.want) {
				t.Errorf("output missing %q:\n%s", tc.want, out)
			}
			if tc.notWant != "" && strings.Contains(out, tc.notWant) {
				t.Errorf("output unexpectedly contains %q:\n%s", tc.notWant, out)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	docs := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	files := map[string]string{
		"index.md":       "# Home\n\nSee [setup](guide/setup.md).\n\n```mermaid\ngraph TD\n  A --> B\n```\n",
		"guide/setup.md": "# Setup\n\n```go\nfunc main() {}\n```\n",
		"legacy.html":    "<html><head><title>old</title></head><body><div class=\"mermaid\"></div></body></html>",
		"drafts/wip.md":  "# WIP\n",
	}
	for rel, content := range files {
		path := filepath.Join(docs, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	wasm := filepath.Join(t.TempDir(), "runtime.wasm")
	if err := os.WriteFile(wasm, []byte("\x00asm"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := &Generator{
		DocsDir:       docs,
		OutputDir:     out,
		ProjectName:   "Demo",
		Exclude:       []string{"drafts/**"},
		Runtime:       DefaultRuntime(),
		RuntimeConfig: []byte("window.diagramZoomConfig = {};\n"),
		WasmPath:      wasm,
		WasmExecPath:  filepath.Join(t.TempDir(), "missing.js"),
	}
	res, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Pages != 2 || res.Copied != 1 || res.Diagrams != 1 {
		t.Errorf("result = %+v, want 2 pages, 1 copied, 1 diagram", res)
	}

	for _, f := range []string{"index.html", "guide/setup.html", "legacy.html", "style.css", "config.js", "diagramzoom.wasm"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(f))); err != nil {
			t.Errorf("expected %s in output: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "drafts", "wip.html")); err == nil {
		t.Error("excluded page was built")
	}

	index := readFile(t, filepath.Join(out, "index.html"))
	for _, want := range []string{
		`<article class="md-content">`,
		`<div class="mermaid">graph TD`,
		`href="guide/setup.html"`,
		`<meta name="diagram-zoom" content="1"/>`,
		`<script src="config.js"></script>`,
		`fetch("diagramzoom.wasm")`,
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index.html missing %s", want)
		}
	}

	setup := readFile(t, filepath.Join(out, "guide", "setup.html"))
	if !strings.Contains(setup, `<script src="../wasm_exec.js"></script>`) {
		t.Error("nested page should load the runtime relative to the site root")
	}
	if strings.Contains(setup, `class="mermaid"`) {
		t.Error("go code block should not become a diagram")
	}
}

func TestGenerateNoMarkdown(t *testing.T) {
	g := &Generator{DocsDir: t.TempDir(), OutputDir: t.TempDir()}
	if _, err := g.Generate(); err == nil {
		t.Error("expected an error when the docs dir has no markdown")
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
