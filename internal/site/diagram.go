package site

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/diagram-zoom/internal/diagrams"
)

// KindDiagram is the node kind of a diagram source block.
var KindDiagram = ast.NewNodeKind("Diagram")

// Diagram is a fenced code block recognized as diagram source. It renders
// as the container element the diagram renderer fills in the browser.
type Diagram struct {
	ast.BaseBlock
	Source  string
	Classes string
}

func (n *Diagram) Kind() ast.NodeKind { return KindDiagram }

func (n *Diagram) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Classes": n.Classes}, nil)
}

// diagramTransformer swaps diagram fences for Diagram nodes. A fence counts
// when its language is mermaid, or when it has no language and its text
// starts with a diagram keyword.
type diagramTransformer struct{}

func (diagramTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	src := reader.Source()
	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fc, ok := n.(*ast.FencedCodeBlock); ok {
			fences = append(fences, fc)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, fc := range fences {
		classes := fenceClasses(fc, src)
		if len(classes) > 0 && strings.HasPrefix(classes[0], "language-") && classes[0] != diagrams.SourceClass {
			continue
		}
		body := fenceText(fc, src)
		if !diagrams.IsDiagramSource(classes, body) {
			continue
		}
		d := &Diagram{Source: body, Classes: diagrams.ContainerClasses(classes)}
		fc.Parent().ReplaceChild(fc.Parent(), fc, d)
	}
}

// fenceClasses turns the info string into classes: the language becomes
// language-<lang>, later words starting with a dot become plain classes.
func fenceClasses(fc *ast.FencedCodeBlock, src []byte) []string {
	if fc.Info == nil {
		return nil
	}
	words := strings.Fields(string(fc.Info.Segment.Value(src)))
	var classes []string
	for i, w := range words {
		switch {
		case i == 0 && !strings.HasPrefix(w, "."):
			classes = append(classes, "language-"+w)
		case strings.HasPrefix(w, "."):
			classes = append(classes, strings.TrimPrefix(w, "."))
		}
	}
	return classes
}

func fenceText(fc *ast.FencedCodeBlock, src []byte) string {
	var b strings.Builder
	lines := fc.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

type diagramRenderer struct{}

func (diagramRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDiagram, renderDiagram)
}

func renderDiagram(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	d := n.(*Diagram)
	_, _ = w.WriteString(`<div class="` + d.Classes + `">`)
	_, _ = w.WriteString(diagrams.EscapeSource(d.Source))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

// DiagramExtension renders diagram fences as renderer containers.
var DiagramExtension goldmark.Extender = diagramExtension{}

type diagramExtension struct{}

func (diagramExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(diagramTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(diagramRenderer{}, 100),
	))
}
