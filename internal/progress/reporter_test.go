package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Label: "Inspecting", Out: &buf}
	r.Start(2)
	r.Update(1, "index.html")
	r.Update(2, "guide.html")
	r.Finish()

	want := []string{
		"Inspecting 2 pages",
		"[1/2] index.html",
		"[2/2] guide.html",
		"Inspecting complete",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("Building").(*CIReporter); !ok {
		t.Error("expected a CIReporter when CI is set")
	}
}

func TestTerminalReporterWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{Label: "Building", Out: &buf}
	r.Start(1)
	r.Update(1, "index.md")
	r.Finish()
	if buf.Len() == 0 {
		t.Error("expected progress output")
	}
}
