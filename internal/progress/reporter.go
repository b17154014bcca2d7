// Package progress reports progress over a batch of pages.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while pages are processed.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a TerminalReporter, or a CIReporter when the CI
// environment variable is set. label names the batch, e.g. "Inspecting".
func NewReporter(label string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Label: label, Out: os.Stderr}
	}
	return &TerminalReporter{Label: label, Out: os.Stderr}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	Label string
	Out   io.Writer
	bar   *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription(r.Label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(r.Label + " " + message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	Label string
	Out   io.Writer
	total int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "%s %d pages\n", r.Label, total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.Out, "%s complete\n", r.Label)
}

// Discard is a Reporter that reports nothing.
type Discard struct{}

func (Discard) Start(int)          {}
func (Discard) Update(int, string) {}
func (Discard) Finish()            {}
