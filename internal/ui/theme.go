package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var accentColor = DefaultAccentColor

// ConfigureTheme sets the accent color from a config value. It accepts an
// ANSI color number (0-255) or a #rgb / #rrggbb hex color. "none", "off",
// "default" or an invalid value disable the accent.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

func normalizeAccentColor(value string) (string, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		hex := strings.ToLower(value[1:])
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		switch len(hex) {
		case 3:
			return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}), true
		case 6:
			return "#" + hex, true
		}
		return "", false
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
