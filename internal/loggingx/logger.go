// Package loggingx wraps a charmbracelet/log backend with the
// hierarchical indent/separator semantics the run log uses: nested
// sections are indented with tab stops, and a horizontal rule separates
// major phases.
package loggingx

import (
	"fmt"
	"io"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Logger is a stateful, hierarchically-indented writer over a
// *charmlog.Logger.
type Logger struct {
	backend    *charmlog.Logger
	currIndent int
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger {
	backend := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Formatter:       charmlog.TextFormatter,
	})
	backend.SetLevel(charmlog.InfoLevel)
	return &Logger{backend: backend}
}

// Indent increases the indent level by one.
func (l *Logger) Indent() { l.currIndent++ }

// Dedent decreases the indent level by n, floored at zero.
func (l *Logger) Dedent(n int) {
	l.currIndent -= n
	if l.currIndent < 0 {
		l.currIndent = 0
	}
}

// Write logs msg, optionally followed by one or more values, at the
// current indent level.
func (l *Logger) Write(msg string, values ...interface{}) {
	prefix := strings.Repeat("\t", l.currIndent)
	if len(values) == 0 {
		l.backend.Print(prefix + msg)
		return
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	l.backend.Print(prefix + msg + " " + strings.Join(parts, " "))
}

// Section starts a new top-level section: a blank line, then msg at
// indent zero.
func (l *Logger) Section(msg string) {
	l.backend.Print("")
	l.currIndent = 0
	l.Write(msg)
}

// Separator writes a horizontal rule, used between major phases.
func (l *Logger) Separator() {
	l.backend.Print(strings.Repeat("-", 60))
}

// DateTime logs msg followed by the current time in RFC3339.
func (l *Logger) DateTime(msg string) {
	l.Write(msg + time.Now().Format(time.RFC3339))
}

// Fatal logs msg, prefixed "FATAL: ", at the current indent, then returns an
// error wrapping msg so the caller can unwind and exit non-zero. It never
// calls os.Exit itself: the simulation has scoped file handles to release
// on every exit path, fatal or not.
func (l *Logger) Fatal(msg string, values ...interface{}) error {
	l.Write("FATAL: " + msg, values...)
	if len(values) == 0 {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("%s: %v", msg, values)
}

// Warn logs msg as a continue-with-degraded-behaviour warning.
func (l *Logger) Warn(msg string, values ...interface{}) {
	l.Write("WARNING: " + msg, values...)
}
