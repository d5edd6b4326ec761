// Package ui renders status lines and tables for the interactive session.
// It holds no state beyond the injected writers; the core packages only
// hand it plain strings and record slices.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger prints labeled, colored status lines. The message kinds form a
// fixed enumeration: info, success, warning, error, highlight.
type Logger struct {
	out    io.Writer
	errOut io.Writer

	info      *color.Color
	success   *color.Color
	warning   *color.Color
	fail      *color.Color
	highlight *color.Color
}

// NewLogger builds a Logger writing regular lines to out and errors to errOut.
func NewLogger(out, errOut io.Writer) *Logger {
	return &Logger{
		out:       out,
		errOut:    errOut,
		info:      color.New(color.FgBlue),
		success:   color.New(color.FgGreen),
		warning:   color.New(color.FgYellow),
		fail:      color.New(color.FgRed),
		highlight: color.New(color.FgCyan, color.Bold),
	}
}

// Info prints a neutral status line.
func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintln(l.out, l.info.Sprintf("🔹 "+format, args...))
}

// Success prints a completed-action line.
func (l *Logger) Success(format string, args ...any) {
	fmt.Fprintln(l.out, l.success.Sprintf("✅ "+format, args...))
}

// Warning prints a degraded-but-continuing line.
func (l *Logger) Warning(format string, args ...any) {
	fmt.Fprintln(l.out, l.warning.Sprintf("⚠️  "+format, args...))
}

// Error prints a failure line to the error writer.
func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintln(l.errOut, l.fail.Sprintf("❌ "+format, args...))
}

// Highlight prints an emphasized line.
func (l *Logger) Highlight(format string, args ...any) {
	fmt.Fprintln(l.out, l.highlight.Sprintf(format, args...))
}

// DisableColor turns off ANSI sequences globally (for --no-color or
// non-terminal output).
func DisableColor() {
	color.NoColor = true
}
