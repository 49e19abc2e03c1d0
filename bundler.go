package mdbundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdbundle/internal/assets"
	"github.com/alnah/go-mdbundle/internal/collect"
	"github.com/alnah/go-mdbundle/internal/fileutil"
	"github.com/alnah/go-mdbundle/internal/merge"
	"github.com/alnah/go-mdbundle/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure backends satisfy their interfaces at compile time, catching
// signature mismatches before runtime.
var (
	_ MarkdownRenderer = (*GoldmarkRenderer)(nil)
	_ PDFRenderer      = (*ChromeRenderer)(nil)
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Bundler orchestrates the collect-merge-render pipeline.
// Create with NewBundler(), run with Bundle(), and Close() when done.
type Bundler struct {
	cfg         bundlerConfig
	mdRenderer  MarkdownRenderer
	pdfRenderer PDFRenderer
}

// NewBundler creates a Bundler with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle,
// WithPDFRenderer). Returns error if style resolution fails.
func NewBundler(opts ...Option) (*Bundler, error) {
	b := &Bundler{
		cfg: bundlerConfig{
			timeout:        defaultTimeout,
			separator:      merge.DefaultSeparator,
			contents:       true,
			contentsTitle:  merge.DefaultContentsTitle,
			sectionNumbers: true,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	if err := b.resolveStyle(); err != nil {
		return nil, err
	}

	// Create default backends if not injected (options or tests)
	if b.mdRenderer == nil {
		b.mdRenderer = NewGoldmarkRenderer()
	}
	if b.pdfRenderer == nil {
		b.pdfRenderer = NewChromeRenderer(b.cfg.timeout)
	}

	return b, nil
}

// Bundle runs the full pipeline: collect the source tree, merge it into one
// Markdown document, write the intermediate file, render HTML then PDF, and
// write the output atomically.
//
// The context is used for cancellation; each render stage additionally runs
// under the configured timeout. On conversion failure the intermediate
// Markdown is kept and its path included in the error, so the user can
// inspect what was fed to the converters. No partial PDF is ever left at
// Job.OutputPath.
//
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (b *Bundler) Bundle(ctx context.Context, job Job) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateJob(job); err != nil {
		return nil, err
	}

	tree, err := collect.Walk(job.SourceDir)
	if err != nil {
		return nil, err
	}

	merged, err := merge.Render(tree, merge.Options{
		Separator:      b.cfg.separator,
		SectionNumbers: b.cfg.sectionNumbers,
		Contents:       b.cfg.contents,
		ContentsTitle:  b.cfg.contentsTitle,
	})
	if err != nil {
		return nil, err
	}

	merged = pipeline.PreprocessMarkdown(merged)

	mergedPath, removeMerged, err := b.writeMerged(merged, job.MergedPath)
	if err != nil {
		return nil, err
	}

	htmlContent, err := b.renderHTML(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML (merged markdown kept at %s): %w", mergedPath, err)
	}

	// Rewrite relative asset paths left over after the Markdown-level
	// rewrite (e.g. reference-style link definitions the merger's regex
	// does not see).
	htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, job.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}

	cssContent := b.cfg.resolvedStyle
	if job.CSS != "" {
		cssContent += "\n" + job.CSS
	}
	htmlContent = pipeline.InjectCSS(htmlContent, cssContent)

	pdfBytes, err := b.renderPDF(ctx, htmlContent, &PDFOptions{Page: job.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF (merged markdown kept at %s): %w", mergedPath, err)
	}

	if err := b.writeOutput(job.OutputPath, pdfBytes); err != nil {
		return nil, fmt.Errorf("writing output (merged markdown kept at %s): %w", mergedPath, err)
	}

	// Success: a temp intermediate has served its purpose.
	resultMergedPath := mergedPath
	if removeMerged != nil {
		removeMerged()
		resultMergedPath = ""
	}

	return &Result{
		OutputPath: job.OutputPath,
		MergedPath: resultMergedPath,
		Documents:  tree.PageCount(),
	}, nil
}

// Close releases resources held by the PDF backend (headless Chrome).
func (b *Bundler) Close() error {
	if b.pdfRenderer != nil {
		return b.pdfRenderer.Close()
	}
	return nil
}

// renderHTML runs the Markdown backend under the configured timeout.
func (b *Bundler) renderHTML(ctx context.Context, markdown string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.timeout)
	defer cancel()
	return b.mdRenderer.RenderHTML(ctx, markdown)
}

// renderPDF runs the PDF backend under the configured timeout.
func (b *Bundler) renderPDF(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.timeout)
	defer cancel()
	return b.pdfRenderer.RenderPDF(ctx, htmlContent, opts)
}

// writeMerged writes the intermediate Markdown document.
// With an explicit path the file is always kept; otherwise a temp file is
// created and a remove function returned for cleanup after success.
func (b *Bundler) writeMerged(merged, explicitPath string) (path string, remove func(), err error) {
	if explicitPath != "" {
		if dir := filepath.Dir(explicitPath); dir != "." {
			if err := os.MkdirAll(dir, dirPermissions); err != nil {
				return "", nil, fmt.Errorf("%w: %v", ErrWriteMerged, err)
			}
		}
		// #nosec G306 -- the merged document is meant to be readable
		if err := os.WriteFile(explicitPath, []byte(merged), filePermissions); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrWriteMerged, err)
		}
		return explicitPath, nil, nil
	}

	path, remove, err = fileutil.WriteTempFile(merged, "md")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrWriteMerged, err)
	}
	return path, remove, nil
}

// writeOutput writes the final PDF atomically, creating the parent
// directory if needed.
func (b *Bundler) writeOutput(outputPath string, pdfBytes []byte) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := fileutil.WriteFileAtomic(outputPath, pdfBytes, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. Called during NewBundler() after options are applied.
func (b *Bundler) resolveStyle() error {
	input := b.cfg.styleInput
	if input == "" {
		css, err := assets.LoadStyle(assets.DefaultStyle)
		if err != nil {
			return fmt.Errorf("loading default style: %w", err)
		}
		b.cfg.resolvedStyle = css
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		b.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		b.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> embedded assets
	css, err := assets.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	b.cfg.resolvedStyle = css
	return nil
}

// validateJob checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Job manually.
// CLI users have their input validated earlier at config/flag parse time.
// Both paths converge here.
func validateJob(job Job) error {
	if job.SourceDir == "" {
		return ErrEmptySource
	}
	if job.OutputPath == "" {
		return ErrEmptyOutput
	}
	if !strings.EqualFold(filepath.Ext(job.OutputPath), ".pdf") {
		return fmt.Errorf("%w: got %q", ErrInvalidOutput, job.OutputPath)
	}
	return job.Page.Validate()
}
