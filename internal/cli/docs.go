package cli

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	builtindocs "github.com/aidanlsb/tagr/docs"
	"github.com/aidanlsb/tagr/internal/ui"
)

var (
	docsDisplayContext = ui.NewDisplayContext
	docsMarkdownRender = ui.RenderMarkdown
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the query language reference",
	Long: `Shows the query language reference. Output is rendered for the terminal
when stdout is a TTY and printed as Markdown otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := fs.ReadFile(builtindocs.FS, builtindocs.QueryReference)
		if err != nil {
			return handleError(fmt.Errorf("failed to read bundled docs: %w", err))
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":    builtindocs.QueryReference,
				"content": string(content),
			}, nil)
			return nil
		}

		display := docsDisplayContext()
		if !display.IsTTY {
			fmt.Print(string(content))
			return nil
		}

		rendered, err := docsMarkdownRender(string(content), display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			logger.Warnf("failed to render docs: %v", err)
			fmt.Print(string(content))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
