package mdbundle

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/alnah/go-mdbundle/internal/fileutil"
	"github.com/alnah/go-mdbundle/internal/process"
)

// PandocRenderer converts Markdown to HTML by invoking the pandoc CLI.
// Selectable as an alternative to the in-process Goldmark backend.
type PandocRenderer struct {
	// Runner executes the subprocess; replaceable for tests.
	Runner process.Runner
}

// Compile-time interface check.
var _ MarkdownRenderer = (*PandocRenderer)(nil)

// NewPandocRenderer creates a PandocRenderer with a real command runner.
func NewPandocRenderer() *PandocRenderer {
	return &PandocRenderer{Runner: process.ExecRunner{}}
}

// RenderHTML converts Markdown content to a standalone HTML5 document using
// pandoc. Uses -f markdown-fancy_lists to disable automatic conversion of
// letter markers (A), B), etc.) to numbered lists, preserving the original
// text. Pandoc's exit status and stderr are carried in the error.
func (r *PandocRenderer) RenderHTML(ctx context.Context, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("%w: empty markdown content", ErrHTMLConversion)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(content, "md")
	if err != nil {
		return "", err
	}
	defer cleanup()

	stdout, stderr, err := r.Runner.Run(ctx, "pandoc", tmpPath, "-f", "markdown-fancy_lists", "-t", "html5", "--standalone")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: pandoc", ErrRendererNotFound)
		}
		return "", fmt.Errorf("%w: pandoc: %s: %v", ErrHTMLConversion, stderr, err)
	}

	return stdout, nil
}
