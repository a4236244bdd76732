package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// DisplayContext describes the terminal results are written to.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether stdout is a terminal
}

// NewDisplayContext inspects stdout.
func NewDisplayContext() *DisplayContext {
	return newDisplayContext(os.Stdout)
}

func newDisplayContext(f *os.File) *DisplayContext {
	fd := f.Fd()
	isTTY := IsTerminal(f)

	width := DefaultTermWidth
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	return &DisplayContext{TermWidth: width, IsTTY: isTTY}
}

// NewDisplayContextWithWidth creates a DisplayContext with a fixed width (for testing).
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	if w := d.TermWidth - leftMargin; w > 0 {
		return w
	}
	return 1
}

// IsTerminal reports whether f is an interactive terminal, including
// Cygwin/MSYS pseudo terminals.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
