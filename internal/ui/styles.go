package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text, file paths on stdout
// - Accent (soft purple #A78BFA, configurable): headers, highlights
// - Muted (gray): secondary info, hints, log timestamps

// DefaultAccentColor is used when no accent is configured.
const DefaultAccentColor = "#A78BFA"

var (
	// Accent style for highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccentColor))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccentColor)).Bold(true)
)
