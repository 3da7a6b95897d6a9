package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI escape codes
const (
	boldGreen = "\033[32;1m"
	boldRed   = "\033[31;1m"
	reset     = "\033[0m"
)

// Formatter decorates report tokens for the output destination.
type Formatter interface {
	Pass(s string) string
	Fail(s string) string
}

// ansiFormatter colors tokens when enabled and passes them through otherwise.
type ansiFormatter struct {
	enabled bool
}

func (f ansiFormatter) Pass(s string) string { return f.paint(boldGreen, s) }
func (f ansiFormatter) Fail(s string) string { return f.paint(boldRed, s) }

func (f ansiFormatter) paint(code, s string) string {
	if !f.enabled {
		return s
	}
	return code + s + reset
}

// newFormatter resolves mode against the destination w.
func newFormatter(mode colorMode, w io.Writer) Formatter {
	switch mode {
	case colorAlways:
		return ansiFormatter{enabled: true}
	case colorNever:
		return ansiFormatter{}
	}
	return ansiFormatter{enabled: isTerminal(w)}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
