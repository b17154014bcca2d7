package diagrams

import (
	"strings"
)

// Keywords are the diagram type declarations a Mermaid source can start
// with. Longer keywords sharing a prefix with a shorter one are redundant
// for matching but kept so the list documents what is supported.
var Keywords = []string{
	"graph",
	"flowchart",
	"sequenceDiagram",
	"classDiagram",
	"erDiagram",
	"gantt",
	"stateDiagram",
	"stateDiagram-v2",
	"mindmap",
	"pie",
	"journey",
	"timeline",
}

// SourceClass marks a code block whose language is Mermaid.
const SourceClass = "language-mermaid"

// ContainerClass is the class of the element a rendered diagram lives in.
const ContainerClass = "mermaid"

// IsDiagramSource reports whether a code block holds Mermaid source: it is
// tagged language-mermaid, or its trimmed text starts with a diagram
// keyword.
func IsDiagramSource(classes []string, text string) bool {
	for _, c := range classes {
		if c == SourceClass {
			return true
		}
	}
	text = strings.TrimSpace(text)
	for _, kw := range Keywords {
		if strings.HasPrefix(text, kw) {
			return true
		}
	}
	return false
}

// ContainerClasses returns the class attribute for the element replacing a
// diagram's code block. Extra classes of the code block are carried over;
// language classes are dropped.
func ContainerClasses(codeClasses []string) string {
	out := []string{ContainerClass}
	for _, c := range codeClasses {
		if c == "" || c == ContainerClass || strings.HasPrefix(c, "language-") {
			continue
		}
		out = append(out, c)
	}
	return strings.Join(out, " ")
}

// EscapeSource escapes s for embedding as HTML text. Quotes are left as is
// so the source stays readable in the built page.
func EscapeSource(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}
