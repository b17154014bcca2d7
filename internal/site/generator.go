// Package site builds a static documentation site whose diagrams are wired
// for the zoom runtime, and injects that runtime into existing pages.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/diagram-zoom/internal/progress"
	"github.com/ziadkadry99/diagram-zoom/internal/walker"
)

// Generator converts markdown documentation into a static HTML site.
type Generator struct {
	DocsDir      string
	OutputDir    string
	ProjectName  string
	ContentClass string
	Include      []string
	Exclude      []string

	Runtime Runtime
	// RuntimeConfig is written to Runtime.ConfigPath when set.
	RuntimeConfig []byte
	// WasmPath and WasmExecPath are copied into the output when they exist.
	WasmPath     string
	WasmExecPath string

	Logger   *log.Logger
	Reporter progress.Reporter
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title        string
	ProjectName  string
	ContentClass string
	Content      template.HTML
	TreeHTML     template.HTML
	BasePath     string
}

// Result summarizes a build.
type Result struct {
	Pages    int
	Copied   int
	Diagrams int
}

// Generate builds the site.
func (g *Generator) Generate() (Result, error) {
	var res Result
	logger := g.Logger
	if logger == nil {
		logger = log.Default()
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Discard{}
	}
	contentClass := g.ContentClass
	if contentClass == "" {
		contentClass = "md-content"
	}

	pages, err := walker.Walk(walker.Config{
		RootDir: g.DocsDir,
		Include: g.Include,
		Exclude: g.Exclude,
	})
	if err != nil {
		return res, fmt.Errorf("walking docs dir: %w", err)
	}

	var mdPaths []string
	var htmlPages []walker.Page
	for _, p := range pages {
		if p.Kind == walker.Markdown {
			mdPaths = append(mdPaths, p.RelPath)
		} else {
			htmlPages = append(htmlPages, p)
		}
	}
	if len(mdPaths) == 0 {
		return res, fmt.Errorf("no markdown files found in %s", g.DocsDir)
	}

	sources := make(map[string][]byte, len(mdPaths))
	titles := make(map[string]string, len(mdPaths))
	for _, rel := range mdPaths {
		content, err := os.ReadFile(filepath.Join(g.DocsDir, filepath.FromSlash(rel)))
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", rel, err)
		}
		sources[rel] = content
		titles[rel] = extractTitle(string(content), rel)
	}
	tree := BuildTree(mdPaths, titles)

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return res, err
	}
	if err := g.writeAssets(logger); err != nil {
		return res, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			DiagramExtension,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return res, fmt.Errorf("parsing page template: %w", err)
	}

	reporter.Start(len(mdPaths) + len(htmlPages))
	for i, rel := range mdPaths {
		reporter.Update(i+1, rel)
		n, err := g.renderPage(md, tmpl, tree, rel, sources[rel], contentClass)
		if err != nil {
			return res, fmt.Errorf("rendering %s: %w", rel, err)
		}
		res.Pages++
		res.Diagrams += n
	}

	// Standalone HTML pages are copied with the runtime injected.
	for i, p := range htmlPages {
		reporter.Update(len(mdPaths)+i+1, p.RelPath)
		if err := g.copyPage(p); err != nil {
			logger.Warn("skipping page", "path", p.RelPath, "err", err)
			continue
		}
		res.Copied++
	}
	reporter.Finish()

	logger.Debug("site built", "pages", res.Pages, "copied", res.Copied, "diagrams", res.Diagrams)
	return res, nil
}

// writeAssets writes the stylesheet, the runtime config and the WASM
// runtime files.
func (g *Generator) writeAssets(logger *log.Logger) error {
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return err
	}
	if g.Runtime.ConfigPath != "" && g.RuntimeConfig != nil {
		if err := os.WriteFile(filepath.Join(g.OutputDir, g.Runtime.ConfigPath), g.RuntimeConfig, 0o644); err != nil {
			return fmt.Errorf("writing runtime config: %w", err)
		}
	}
	for _, f := range []struct{ src, dst string }{
		{g.WasmPath, g.Runtime.Wasm},
		{g.WasmExecPath, g.Runtime.WasmExec},
	} {
		if f.src == "" || f.dst == "" {
			continue
		}
		data, err := os.ReadFile(f.src)
		if err != nil {
			logger.Warn("runtime file not copied", "path", f.src, "err", err)
			continue
		}
		if err := os.WriteFile(filepath.Join(g.OutputDir, f.dst), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// renderPage converts a single markdown file to an HTML page and returns
// the number of diagrams on it.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, tree *NavTree, relPath string, content []byte, contentClass string) (int, error) {
	var body bytes.Buffer
	if err := md.Convert(content, &body); err != nil {
		return 0, fmt.Errorf("converting markdown: %w", err)
	}
	htmlContent := rewriteMDLinks(body.String())
	diagrams := strings.Count(htmlContent, `<div class="mermaid`)

	htmlRelPath := pagePath(relPath)
	basePath := basePathFor(htmlRelPath)

	var page bytes.Buffer
	err := tmpl.Execute(&page, pageData{
		Title:        extractTitle(string(content), relPath),
		ProjectName:  g.ProjectName,
		ContentClass: contentClass,
		Content:      template.HTML(htmlContent),
		TreeHTML:     template.HTML(tree.ToHTML(relPath, basePath)),
		BasePath:     basePath,
	})
	if err != nil {
		return 0, err
	}

	out, err := Inject(page.Bytes(), g.Runtime.WithBase(basePath))
	if err != nil {
		return 0, err
	}
	return diagrams, writeFile(filepath.Join(g.OutputDir, filepath.FromSlash(htmlRelPath)), out)
}

func (g *Generator) copyPage(p walker.Page) error {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return err
	}
	out, err := Inject(data, g.Runtime.WithBase(basePathFor(p.RelPath)))
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(g.OutputDir, filepath.FromSlash(p.RelPath)), out)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	base := filepath.Base(relPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// rewriteMDLinks changes .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	return strings.NewReplacer(`.md"`, `.html"`, `.md#`, `.html#`).Replace(content)
}
