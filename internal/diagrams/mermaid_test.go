package diagrams

import "testing"

func TestIsDiagramSource(t *testing.T) {
	tests := []struct {
		name    string
		classes []string
		text    string
		want    bool
	}{
		{"language class", []string{"language-mermaid"}, "anything", true},
		{"flowchart keyword", nil, "flowchart LR\n  A --> B", true},
		{"leading whitespace", nil, "\n\n   sequenceDiagram\n  A->>B: hi", true},
		{"state v2", []string{"language-text"}, "stateDiagram-v2\n [*] --> A", true},
		{"timeline", nil, "timeline\n title History", true},
		{"plain code", []string{"language-go"}, "package main", false},
		{"keyword not at start", nil, "// graph of calls", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDiagramSource(tt.classes, tt.text); got != tt.want {
				t.Errorf("IsDiagramSource(%v, %q) = %v, want %v", tt.classes, tt.text, got, tt.want)
			}
		})
	}
}

func TestContainerClasses(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, "mermaid"},
		{[]string{"language-mermaid"}, "mermaid"},
		{[]string{"language-mermaid", "wide", "mermaid", "dark"}, "mermaid wide dark"},
	}
	for _, tt := range tests {
		if got := ContainerClasses(tt.in); got != tt.want {
			t.Errorf("ContainerClasses(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeSource(t *testing.T) {
	got := EscapeSource(`A["x"] --> B<br/> & C`)
	want := `A["x"] --&gt; B&lt;br/&gt; &amp; C`
	if got != want {
		t.Errorf("EscapeSource = %q, want %q", got, want)
	}
}
