package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/inspect"
)

func TestPrintReport(t *testing.T) {
	reports := []inspect.Page{
		{Path: "index.html", Diagrams: []inspect.Diagram{
			{Index: 0, Bound: true, Ready: true, Mode: fit.Formula, Scale: 1.96},
			{Index: 1, Bound: true, Ready: true, Attempts: 12, Mode: fit.Native},
		}},
		{Path: "empty.html"},
		{Path: "guide/setup.html", Diagrams: []inspect.Diagram{
			{Index: 0, Bound: false},
		}},
	}
	var buf bytes.Buffer
	problems := printReport(&buf, reports)
	if problems != 2 {
		t.Errorf("problems = %d, want 2", problems)
	}
	out := buf.String()
	for _, want := range []string{"index.html", "guide/setup.html", "native", "unbound", "3 page(s), 3 diagram(s), 2 flagged"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "empty.html") {
		t.Error("page without diagrams listed")
	}
}
