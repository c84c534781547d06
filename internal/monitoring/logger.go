// Package monitoring provides the pipeline's diagnostic logging hooks.
package monitoring

import (
	"fmt"
	"log"
)

// LogFunc is the signature shared by all diagnostic loggers in the pipeline.
type LogFunc func(format string, v ...interface{})

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf LogFunc = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f LogFunc) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// FileWarner emits per-line warnings for one input file, prefixed with the
// file name and line number so an operator can find the offending line. It
// counts the warnings it emits; parsing anomalies are never fatal, so the
// count is the only evidence a batch left data behind.
type FileWarner struct {
	File string
	Logf LogFunc // nil means the package-level Logf

	count int
}

// Warnf logs one warning attributed to the given line of the file.
func (w *FileWarner) Warnf(line int, format string, v ...interface{}) {
	w.count++
	f := w.Logf
	if f == nil {
		f = Logf
	}
	f("warning: %s:%d: %s", w.File, line, fmt.Sprintf(format, v...))
}

// Count returns how many warnings have been emitted for the file.
func (w *FileWarner) Count() int { return w.count }
