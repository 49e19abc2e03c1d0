package mdbundle_test

// Notes:
// - The bundler is tested with fake renderers so no browser or external
//   binary is needed; mdbundle_integration_test.go exercises the real stack.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdbundle "github.com/alnah/go-mdbundle"
	"github.com/alnah/go-mdbundle/internal/collect"
)

// fakeMarkdownRenderer records its input and returns a minimal document.
type fakeMarkdownRenderer struct {
	gotMarkdown string
	err         error
}

func (f *fakeMarkdownRenderer) RenderHTML(_ context.Context, markdown string) (string, error) {
	f.gotMarkdown = markdown
	if f.err != nil {
		return "", f.err
	}
	return "<html><head></head><body>rendered</body></html>", nil
}

// fakePDFRenderer records its input and returns fixed bytes.
type fakePDFRenderer struct {
	gotHTML string
	gotOpts *mdbundle.PDFOptions
	err     error
	closed  bool
}

func (f *fakePDFRenderer) RenderPDF(_ context.Context, htmlContent string, opts *mdbundle.PDFOptions) ([]byte, error) {
	f.gotHTML = htmlContent
	f.gotOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

func (f *fakePDFRenderer) Close() error {
	f.closed = true
	return nil
}

// newTestBundler builds a bundler with fake backends, returning the fakes.
func newTestBundler(t *testing.T, opts ...mdbundle.Option) (*mdbundle.Bundler, *fakeMarkdownRenderer, *fakePDFRenderer) {
	t.Helper()
	md := &fakeMarkdownRenderer{}
	pdf := &fakePDFRenderer{}
	opts = append(opts, mdbundle.WithMarkdownRenderer(md), mdbundle.WithPDFRenderer(pdf))
	b, err := mdbundle.NewBundler(opts...)
	if err != nil {
		t.Fatalf("NewBundler() error = %v", err)
	}
	return b, md, pdf
}

// setupDocs creates a docs tree under a temp dir.
func setupDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

// ---------------------------------------------------------------------------
// TestNewBundler - Construction and style resolution
// ---------------------------------------------------------------------------

func TestNewBundler_UnknownStyle(t *testing.T) {
	t.Parallel()

	_, err := mdbundle.NewBundler(mdbundle.WithStyle("no-such-style"))
	if err == nil {
		t.Error("NewBundler() accepted an unknown style name")
	}
}

func TestNewBundler_StyleFromFile(t *testing.T) {
	t.Parallel()

	cssPath := filepath.Join(t.TempDir(), "custom.css")
	if err := os.WriteFile(cssPath, []byte("h1 { color: teal; }"), 0o644); err != nil {
		t.Fatalf("writing css: %v", err)
	}

	b, _, pdf := newTestBundlerWithStyle(t, cssPath)
	dir := setupDocs(t, map[string]string{"a.md": "Body."})

	if _, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: filepath.Join(t.TempDir(), "out.pdf"),
	}); err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	if !strings.Contains(pdf.gotHTML, "h1 { color: teal; }") {
		t.Error("file-based style not injected into HTML")
	}
}

// newTestBundlerWithStyle is newTestBundler with a style option.
func newTestBundlerWithStyle(t *testing.T, style string) (*mdbundle.Bundler, *fakeMarkdownRenderer, *fakePDFRenderer) {
	t.Helper()
	return newTestBundler(t, mdbundle.WithStyle(style))
}

// ---------------------------------------------------------------------------
// TestBundle_Validation - Job trust boundary
// ---------------------------------------------------------------------------

func TestBundle_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		job     mdbundle.Job
		wantErr error
	}{
		{
			name:    "empty source",
			job:     mdbundle.Job{OutputPath: "out.pdf"},
			wantErr: mdbundle.ErrEmptySource,
		},
		{
			name:    "empty output",
			job:     mdbundle.Job{SourceDir: "docs"},
			wantErr: mdbundle.ErrEmptyOutput,
		},
		{
			name:    "non-pdf output",
			job:     mdbundle.Job{SourceDir: "docs", OutputPath: "out.html"},
			wantErr: mdbundle.ErrInvalidOutput,
		},
		{
			name: "invalid page settings",
			job: mdbundle.Job{
				SourceDir:  "docs",
				OutputPath: "out.pdf",
				Page:       &mdbundle.PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 1},
			},
			wantErr: mdbundle.ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, _, _ := newTestBundler(t)
			_, err := b.Bundle(context.Background(), tt.job)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Bundle() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBundle_SourceNotFound(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBundler(t)
	_, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  filepath.Join(t.TempDir(), "missing"),
		OutputPath: filepath.Join(t.TempDir(), "out.pdf"),
	})
	if !errors.Is(err, collect.ErrSourceNotFound) {
		t.Errorf("Bundle() error = %v, want ErrSourceNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestBundle_Pipeline - Full flow with fakes
// ---------------------------------------------------------------------------

func TestBundle_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := setupDocs(t, map[string]string{
		"_index.md": "---\ntitle: Manual\n---",
		"intro.md":  "---\ntitle: Intro\nweight: 1\n---\nINTRO-BODY",
		"usage.md":  "---\ntitle: Usage\nweight: 2\n---\nUSAGE-BODY",
	})
	outPath := filepath.Join(t.TempDir(), "out", "manual.pdf")

	b, md, pdf := newTestBundler(t)
	result, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: outPath,
	})
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	// Merged markdown reached the HTML backend with both pages in order.
	if !strings.Contains(md.gotMarkdown, "INTRO-BODY") || !strings.Contains(md.gotMarkdown, "USAGE-BODY") {
		t.Errorf("merged markdown missing page bodies:\n%s", md.gotMarkdown)
	}
	if strings.Index(md.gotMarkdown, "INTRO-BODY") > strings.Index(md.gotMarkdown, "USAGE-BODY") {
		t.Error("pages out of order in merged markdown")
	}

	// Base style was injected before the PDF backend ran.
	if !strings.Contains(pdf.gotHTML, "<style>") {
		t.Error("stylesheet not injected into HTML")
	}

	// Output written, intermediate removed.
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Errorf("output content = %q", data)
	}
	if result.Documents != 2 {
		t.Errorf("Documents = %d, want 2", result.Documents)
	}
	if result.MergedPath != "" {
		t.Errorf("MergedPath = %q, want removed temp", result.MergedPath)
	}
}

func TestBundle_ExtraCSSAppended(t *testing.T) {
	t.Parallel()

	dir := setupDocs(t, map[string]string{"a.md": "Body."})

	b, _, pdf := newTestBundler(t)
	_, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: filepath.Join(t.TempDir(), "out.pdf"),
		CSS:        "blockquote { border-left: 2px solid; }",
	})
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	if !strings.Contains(pdf.gotHTML, "blockquote { border-left: 2px solid; }") {
		t.Error("job CSS not appended to injected styles")
	}
}

func TestBundle_KeepsExplicitMergedPath(t *testing.T) {
	t.Parallel()

	dir := setupDocs(t, map[string]string{"a.md": "Body."})
	mergedPath := filepath.Join(t.TempDir(), "merged.md")

	b, _, _ := newTestBundler(t)
	result, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: filepath.Join(t.TempDir(), "out.pdf"),
		MergedPath: mergedPath,
	})
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	if result.MergedPath != mergedPath {
		t.Errorf("MergedPath = %q, want %q", result.MergedPath, mergedPath)
	}
	data, err := os.ReadFile(mergedPath)
	if err != nil {
		t.Fatalf("merged file not kept: %v", err)
	}
	if !strings.Contains(string(data), "Body.") {
		t.Errorf("merged file missing content:\n%s", data)
	}
}

// ---------------------------------------------------------------------------
// TestBundle_Failure - Error paths and atomicity
// ---------------------------------------------------------------------------

func TestBundle_PDFFailureKeepsMergedAndNoOutput(t *testing.T) {
	t.Parallel()

	dir := setupDocs(t, map[string]string{"a.md": "Body."})
	mergedPath := filepath.Join(t.TempDir(), "merged.md")
	outPath := filepath.Join(t.TempDir(), "out.pdf")

	b, _, pdf := newTestBundler(t)
	pdf.err = mdbundle.ErrPDFGeneration

	_, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: outPath,
		MergedPath: mergedPath,
	})
	if !errors.Is(err, mdbundle.ErrPDFGeneration) {
		t.Fatalf("Bundle() error = %v, want ErrPDFGeneration", err)
	}

	// Error names the intermediate so the user can inspect it.
	if !strings.Contains(err.Error(), mergedPath) {
		t.Errorf("error does not mention merged path: %v", err)
	}
	if _, statErr := os.Stat(mergedPath); statErr != nil {
		t.Errorf("merged file removed on failure: %v", statErr)
	}
	// No partial PDF.
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("output file exists after failed conversion")
	}
}

func TestBundle_WriteFailureReportsMergedPath(t *testing.T) {
	t.Parallel()

	dir := setupDocs(t, map[string]string{"a.md": "Body."})

	// A regular file where the output directory should go makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seeding blocker: %v", err)
	}
	mergedPath := filepath.Join(t.TempDir(), "merged.md")

	b, _, _ := newTestBundler(t)
	_, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: filepath.Join(blocker, "out.pdf"),
		MergedPath: mergedPath,
	})
	if !errors.Is(err, mdbundle.ErrWriteOutput) {
		t.Fatalf("Bundle() error = %v, want ErrWriteOutput", err)
	}
	if !strings.Contains(err.Error(), mergedPath) {
		t.Errorf("error does not mention merged path: %v", err)
	}
	if _, statErr := os.Stat(mergedPath); statErr != nil {
		t.Errorf("merged file not kept after write failure: %v", statErr)
	}
}

func TestBundle_HTMLFailure(t *testing.T) {
	t.Parallel()

	dir := setupDocs(t, map[string]string{"a.md": "Body."})

	b, md, _ := newTestBundler(t)
	md.err = mdbundle.ErrHTMLConversion

	_, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: filepath.Join(t.TempDir(), "out.pdf"),
	})
	if !errors.Is(err, mdbundle.ErrHTMLConversion) {
		t.Errorf("Bundle() error = %v, want ErrHTMLConversion", err)
	}
}

func TestBundler_ClosePropagates(t *testing.T) {
	t.Parallel()

	b, _, pdf := newTestBundler(t)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pdf.closed {
		t.Error("Close() did not reach the PDF backend")
	}
}
