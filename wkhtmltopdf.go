package mdbundle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-mdbundle/internal/fileutil"
	"github.com/alnah/go-mdbundle/internal/process"
)

// WkhtmltopdfRenderer converts HTML to PDF by invoking the wkhtmltopdf CLI.
// Selectable as an alternative to the headless Chrome backend.
type WkhtmltopdfRenderer struct {
	// Runner executes the subprocess; replaceable for tests.
	Runner  process.Runner
	timeout time.Duration
}

// Compile-time interface check.
var _ PDFRenderer = (*WkhtmltopdfRenderer)(nil)

// NewWkhtmltopdfRenderer creates a WkhtmltopdfRenderer with a real command
// runner and the given per-render timeout.
func NewWkhtmltopdfRenderer(timeout time.Duration) *WkhtmltopdfRenderer {
	return &WkhtmltopdfRenderer{Runner: process.ExecRunner{}, timeout: timeout}
}

// RenderPDF converts HTML content to PDF bytes via wkhtmltopdf.
// The HTML is staged in a temporary file (wkhtmltopdf reads files, not
// stdin, when local file access is needed); both temp files are removed on
// all exit paths. The tool's exit status and stderr are carried in the
// error.
func (r *WkhtmltopdfRenderer) RenderPDF(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlPath, cleanupHTML, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanupHTML()

	pdfPath, cleanupPDF, err := fileutil.WriteTempFile("", "pdf")
	if err != nil {
		return nil, err
	}
	defer cleanupPDF()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := append(buildWkhtmltopdfArgs(opts), htmlPath, pdfPath)
	_, stderr, err := r.Runner.Run(ctx, "wkhtmltopdf", args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: wkhtmltopdf", ErrRendererNotFound)
		}
		return nil, fmt.Errorf("%w: wkhtmltopdf: %s: %v", ErrPDFGeneration, strings.TrimSpace(stderr), err)
	}

	pdfBytes, err := os.ReadFile(pdfPath) // #nosec G304 -- temp path created above
	if err != nil {
		return nil, fmt.Errorf("%w: reading wkhtmltopdf output: %v", ErrPDFGeneration, err)
	}
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("%w: wkhtmltopdf produced no output", ErrPDFGeneration)
	}

	return pdfBytes, nil
}

// Close is a no-op; wkhtmltopdf holds no persistent resources.
func (r *WkhtmltopdfRenderer) Close() error {
	return nil
}

// buildWkhtmltopdfArgs maps page settings onto wkhtmltopdf flags.
// Local file access must be enabled for images referenced via file:// or
// absolute paths in the merged document.
func buildWkhtmltopdfArgs(opts *PDFOptions) []string {
	args := []string{
		"--enable-local-file-access",
		"--load-error-handling", "skip",
		"--load-media-error-handling", "skip",
	}

	page := DefaultPageSettings()
	if opts != nil && opts.Page != nil {
		page = opts.Page
	}

	if page.Size != "" {
		args = append(args, "--page-size", wkhtmltopdfPageSize(page.Size))
	}
	if strings.EqualFold(page.Orientation, OrientationLandscape) {
		args = append(args, "--orientation", "Landscape")
	}

	margin := page.Margin
	if margin == 0 {
		margin = DefaultMargin
	}
	mm := fmt.Sprintf("%.0fmm", margin*25.4)
	args = append(args,
		"--margin-top", mm,
		"--margin-bottom", mm,
		"--margin-left", mm,
		"--margin-right", mm,
	)

	return args
}

// wkhtmltopdfPageSize maps our page size names to wkhtmltopdf's.
func wkhtmltopdfPageSize(size string) string {
	switch strings.ToLower(size) {
	case PageSizeA4:
		return "A4"
	case PageSizeLegal:
		return "Legal"
	default:
		return "Letter"
	}
}
