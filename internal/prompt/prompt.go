// Package prompt reads commands and answers from the user, either through
// interactive terminal widgets or plain line input when stdin is not a
// terminal.
package prompt

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Input is one submission from the user: a command line, or a shortcut key
// pressed instead of typing
type Input struct {
	Line     string
	Shortcut string
}

// LineReader reads one Input per call and returns io.EOF when the user is
// done
type LineReader interface {
	ReadLine(prompt string) (Input, error)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
