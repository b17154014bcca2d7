package walker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates files (relative path to content) under a temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func relPaths(pages []Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.RelPath
	}
	return out
}

func sampleSite(t *testing.T) string {
	return writeTree(t, map[string]string{
		"index.md":              "# Home",
		"guide/setup.md":        "# Setup",
		"guide/arch.markdown":   "# Architecture",
		"site/index.html":       "<html></html>",
		"site/guide/setup.html": "<html></html>",
		"assets/logo.svg":       "<svg></svg>",
		"node_modules/pkg/x.md": "# vendored",
		"drafts/wip.md":         "# wip",
		".gitignore":            "drafts/\n*.tmp.md\n",
		"notes.tmp.md":          "# scratch",
	})
}

func TestWalk_BasicTraversal(t *testing.T) {
	pages, err := Walk(Config{RootDir: sampleSite(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	want := []string{
		"guide/arch.markdown",
		"guide/setup.md",
		"index.md",
		"site/guide/setup.html",
		"site/index.html",
	}
	got := relPaths(pages)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Walk() = %v, want %v", got, want)
	}
}

func TestWalk_PageFields(t *testing.T) {
	pages, err := Walk(Config{RootDir: sampleSite(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, p := range pages {
		if !filepath.IsAbs(p.Path) {
			t.Errorf("Page.Path %q is not absolute", p.Path)
		}
		if p.Size <= 0 {
			t.Errorf("Page.Size for %s is %d, expected > 0", p.RelPath, p.Size)
		}
		if p.Kind != DetectKind(p.RelPath) {
			t.Errorf("Page.Kind for %s is %q", p.RelPath, p.Kind)
		}
	}
}

func TestWalk_KindFilter(t *testing.T) {
	pages, err := Walk(Config{RootDir: sampleSite(t), Kinds: []Kind{HTML}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 html pages, got %v", relPaths(pages))
	}
	for _, p := range pages {
		if p.Kind != HTML {
			t.Errorf("kind filter let through %s", p.RelPath)
		}
	}
}

func TestWalk_IncludeExclude(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    string
	}{
		{"double star include", []string{"guide/**"}, nil, "guide/arch.markdown,guide/setup.md"},
		{"basename include", []string{"*.md"}, nil, "guide/setup.md,index.md"},
		{"exclude directory", nil, []string{"site/**"}, "guide/arch.markdown,guide/setup.md,index.md"},
		{"include and exclude", []string{"**/*.html"}, []string{"site/guide/**"}, "site/index.html"},
	}
	dir := sampleSite(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pages, err := Walk(Config{RootDir: dir, Include: tc.include, Exclude: tc.exclude})
			if err != nil {
				t.Fatalf("Walk() error: %v", err)
			}
			if got := strings.Join(relPaths(pages), ","); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestWalk_InvalidPattern(t *testing.T) {
	if _, err := Walk(Config{RootDir: t.TempDir(), Include: []string{"[unclosed"}}); err == nil {
		t.Error("expected an error for a malformed pattern")
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(Config{RootDir: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestWalk_SkipsBinaryFiles(t *testing.T) {
	binary := make([]byte, 100)
	binary[50] = 0x00
	dir := writeTree(t, map[string]string{
		"readme.md": "# Hello",
		"broken.md": string(binary),
	})

	pages, err := Walk(Config{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got := relPaths(pages); len(got) != 1 || got[0] != "readme.md" {
		t.Errorf("expected only readme.md, got %v", got)
	}
}

func TestWalk_SkipsLargeFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"small.md": "small",
		"big.md":   strings.Repeat("A", 200),
	})

	pages, err := Walk(Config{RootDir: dir, MaxFileSize: 100})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	for _, p := range pages {
		if p.RelPath == "big.md" {
			t.Error("big.md should have been skipped (exceeds MaxFileSize)")
		}
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		filename string
		want     Kind
	}{
		{"index.md", Markdown},
		{"GUIDE.MD", Markdown},
		{"arch.markdown", Markdown},
		{"index.html", HTML},
		{"old.htm", HTML},
		{"logo.svg", ""},
		{"noextension", ""},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			if got := DetectKind(tc.filename); got != tc.want {
				t.Errorf("DetectKind(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

func TestMatchesInclude_Empty(t *testing.T) {
	if !MatchesInclude("anything.md", nil) {
		t.Error("empty include patterns should include everything")
	}
}

func TestMatchesExclude_Pattern(t *testing.T) {
	if !MatchesExclude("drafts/wip.md", []string{"drafts/**"}) {
		t.Error("drafts/** should match drafts/wip.md")
	}
	if MatchesExclude("guide/drafts.md", []string{"drafts/**"}) {
		t.Error("drafts/** should not match guide/drafts.md")
	}
}

func TestMatchesGitignore(t *testing.T) {
	patterns := []string{"drafts/", "*.tmp.md", "site/private.html"}
	tests := []struct {
		path string
		want bool
	}{
		{"drafts/wip.md", true},
		{"a/drafts/wip.md", true},
		{"drafts", false},
		{"notes.tmp.md", true},
		{"site/private.html", true},
		{"site/public.html", false},
	}
	for _, tc := range tests {
		if got := matchesGitignore(tc.path, patterns); got != tc.want {
			t.Errorf("matchesGitignore(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
