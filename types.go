package mdbundle

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Job describes one bundle run.
type Job struct {
	SourceDir  string        // directory of Markdown sources (required)
	OutputPath string        // destination PDF path (required, must end in .pdf)
	MergedPath string        // intermediate Markdown path (optional, "" = temp file)
	CSS        string        // extra CSS appended after the base style (optional)
	Page       *PageSettings // page settings (optional, nil = defaults)
}

// Result holds the outcome of a successful bundle run.
type Result struct {
	OutputPath string // final PDF location
	MergedPath string // intermediate Markdown location ("" if removed after success)
	Documents  int    // number of source pages merged
}

// MarkdownRenderer converts merged Markdown to a standalone HTML document.
type MarkdownRenderer interface {
	RenderHTML(ctx context.Context, markdown string) (string, error)
}

// PDFRenderer converts an HTML document to PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error)
	Close() error
}

// PDFOptions holds options for PDF generation.
type PDFOptions struct {
	Page *PageSettings
}

// Option configures a Bundler.
type Option func(*Bundler)

// bundlerConfig holds internal configuration for Bundler.
type bundlerConfig struct {
	timeout        time.Duration
	styleInput     string // style name, CSS file path, or raw CSS
	resolvedStyle  string
	separator      string
	contents       bool
	contentsTitle  string
	sectionNumbers bool
}

// defaultTimeout bounds each external render step. Whole-book renders are
// slower than single pages, hence the generous default.
const defaultTimeout = 2 * time.Minute

// WithTimeout sets the per-stage conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdbundle: WithTimeout duration must be positive")
	}
	return func(b *Bundler) {
		b.cfg.timeout = d
	}
}

// WithStyle sets the base stylesheet. Accepts an embedded style name
// (e.g. "document", "plain"), a CSS file path, or raw CSS content.
func WithStyle(nameOrPathOrCSS string) Option {
	return func(b *Bundler) {
		b.cfg.styleInput = nameOrPathOrCSS
	}
}

// WithSeparator overrides the document separator inserted between merged
// pages. The default is a thematic break surrounded by blank lines.
func WithSeparator(sep string) Option {
	return func(b *Bundler) {
		b.cfg.separator = sep
	}
}

// WithoutContents disables the generated per-section contents lists.
func WithoutContents() Option {
	return func(b *Bundler) {
		b.cfg.contents = false
	}
}

// WithContentsTitle sets the heading used for generated contents lists.
func WithContentsTitle(title string) Option {
	return func(b *Bundler) {
		b.cfg.contentsTitle = title
	}
}

// WithoutSectionNumbers disables hierarchical section numbering in
// generated section headings.
func WithoutSectionNumbers() Option {
	return func(b *Bundler) {
		b.cfg.sectionNumbers = false
	}
}

// WithMarkdownRenderer replaces the Markdown to HTML backend.
func WithMarkdownRenderer(r MarkdownRenderer) Option {
	return func(b *Bundler) {
		b.mdRenderer = r
	}
}

// WithPDFRenderer replaces the HTML to PDF backend.
func WithPDFRenderer(r PDFRenderer) Option {
	return func(b *Bundler) {
		b.pdfRenderer = r
	}
}
