package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// RenderMarkdown renders markdown for the terminal, wrapping at width.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// markdownStyle is glamour's dark style recoloured with the accent. Headings
// lose their level prefixes and query examples keep a colour even when the
// accent is disabled.
func markdownStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig

	var accent *string
	if color, ok := AccentColor(); ok {
		accent = mdStringPtr(color)
	}
	code := accent
	if code == nil {
		code = mdStringPtr("6")
	}

	style.Document.Margin = mdUintPtr(MarkdownRenderMargin)
	style.Document.Color = nil

	style.Heading = ansi.StyleBlock{
		StylePrimitive: ansi.StylePrimitive{
			BlockSuffix: "\n",
			Color:       accent,
			Bold:        mdBoolPtr(true),
		},
	}
	style.H1 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Underline: mdBoolPtr(true)}}
	style.H2 = ansi.StyleBlock{}
	style.H3 = ansi.StyleBlock{}

	style.Code = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: code}}
	style.CodeBlock.Color = code
	style.CodeBlock.Margin = mdUintPtr(MarkdownRenderMargin)
	style.CodeBlock.Chroma = nil

	style.Table.CenterSeparator = mdStringPtr("│")
	style.Table.ColumnSeparator = mdStringPtr("│")
	style.Table.RowSeparator = mdStringPtr("─")
	return style
}

func mdBoolPtr(v bool) *bool { return &v }

func mdStringPtr(v string) *string { return &v }

func mdUintPtr(v uint) *uint { return &v }
