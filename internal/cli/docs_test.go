package cli

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"

	builtindocs "github.com/aidanlsb/tagr/docs"
	"github.com/aidanlsb/tagr/internal/ui"
)

func stubDocsDisplay(t *testing.T, display *ui.DisplayContext, render func(string, int) (string, error)) {
	t.Helper()
	prevDisplay, prevRender, prevJSON := docsDisplayContext, docsMarkdownRender, jsonOutput
	t.Cleanup(func() {
		docsDisplayContext, docsMarkdownRender, jsonOutput = prevDisplay, prevRender, prevJSON
	})
	docsDisplayContext = func() *ui.DisplayContext { return display }
	if render != nil {
		docsMarkdownRender = render
	}
	jsonOutput = false
}

func readQueryReference(t *testing.T) string {
	t.Helper()
	content, err := fs.ReadFile(builtindocs.FS, builtindocs.QueryReference)
	if err != nil {
		t.Fatalf("failed to read bundled docs: %v", err)
	}
	return string(content)
}

func TestDocsPlainWhenNotTTY(t *testing.T) {
	stubDocsDisplay(t, &ui.DisplayContext{TermWidth: 80}, func(string, int) (string, error) {
		t.Fatal("markdown should not be rendered for a pipe")
		return "", nil
	})

	out := captureStdout(t, func() {
		if err := docsCmd.RunE(docsCmd, nil); err != nil {
			t.Fatalf("docsCmd.RunE: %v", err)
		}
	})
	if out != readQueryReference(t) {
		t.Errorf("expected raw markdown output, got:\n%s", out)
	}
}

func TestDocsRenderedForTTY(t *testing.T) {
	var gotWidth int
	stubDocsDisplay(t, ui.NewDisplayContextWithWidth(90), func(content string, width int) (string, error) {
		gotWidth = width
		return "RENDERED\n", nil
	})

	out := captureStdout(t, func() {
		if err := docsCmd.RunE(docsCmd, nil); err != nil {
			t.Fatalf("docsCmd.RunE: %v", err)
		}
	})
	if out != "RENDERED\n" {
		t.Errorf("expected rendered output, got %q", out)
	}
	if want := 90 - ui.MarkdownRenderMargin; gotWidth != want {
		t.Errorf("render width = %d, want %d", gotWidth, want)
	}
}

func TestDocsJSON(t *testing.T) {
	stubDocsDisplay(t, &ui.DisplayContext{TermWidth: 80}, nil)
	jsonOutput = true

	out := captureStdout(t, func() {
		if err := docsCmd.RunE(docsCmd, nil); err != nil {
			t.Fatalf("docsCmd.RunE: %v", err)
		}
	})

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK || resp.Data.Path != builtindocs.QueryReference {
		t.Errorf("unexpected response: %s", out)
	}
	if !strings.HasPrefix(resp.Data.Content, "# Query language") {
		t.Errorf("unexpected content: %q", resp.Data.Content)
	}
}
