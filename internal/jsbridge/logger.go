//go:build js && wasm

package jsbridge

import (
	"strings"
	"syscall/js"

	"github.com/charmbracelet/log"
)

// console writes each log line to the browser console.
type console struct{ c js.Value }

func (w console) Write(p []byte) (int, error) {
	w.c.Call("log", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// NewLogger returns a logfmt logger writing to the browser console.
func NewLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(console{c: js.Global().Get("console")}, log.Options{
		Level:     level,
		Formatter: log.LogfmtFormatter,
		Prefix:    "diagram-zoom",
	})
}
