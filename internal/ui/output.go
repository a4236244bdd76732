package ui

import "fmt"

// Status symbols. Warnings and errors get theirs from the logger.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Success returns a success message with checkmark symbol
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with checkmark symbol
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Warning returns a warning message with warning symbol
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Header returns a styled section header
func Header(msg string) string {
	return AccentBold.Render(msg)
}

// Hint returns muted hint text
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns a muted count badge such as "(3 directories)".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return Muted.Render(fmt.Sprintf("(%d %s)", n, singular))
	}
	return Muted.Render(fmt.Sprintf("(%d %s)", n, plural))
}
