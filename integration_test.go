package mdbundle_test

// Notes:
// - Runs the real pipeline end to end: Goldmark, headless Chrome, and a PDF
//   text check. Requires a Chrome/Chromium install (rod downloads one on
//   first run) so it is gated behind MDBUNDLE_INTEGRATION=1.
// - In Docker/CI set ROD_NO_SANDBOX=1; see the package docs.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"

	mdbundle "github.com/alnah/go-mdbundle"
)

func TestBundle_Integration(t *testing.T) {
	if os.Getenv("MDBUNDLE_INTEGRATION") != "1" {
		t.Skip("set MDBUNDLE_INTEGRATION=1 to run the browser-backed integration test")
	}

	dir := setupDocs(t, map[string]string{
		"_index.md": "---\ntitle: Handbook\n---",
		"intro.md":  "---\ntitle: Introduction\nweight: 1\n---\nWelcome to the handbook.",
		"setup.md":  "---\ntitle: Setup\nweight: 2\n---\nInstall the tool first.",
	})
	outPath := filepath.Join(t.TempDir(), "handbook.pdf")

	b, err := mdbundle.NewBundler(mdbundle.WithTimeout(2 * time.Minute))
	if err != nil {
		t.Fatalf("NewBundler() error = %v", err)
	}
	defer b.Close()

	result, err := b.Bundle(context.Background(), mdbundle.Job{
		SourceDir:  dir,
		OutputPath: outPath,
	})
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	if result.Documents != 2 {
		t.Errorf("Documents = %d, want 2", result.Documents)
	}

	// The output must be a readable PDF containing the source text.
	f, reader, err := pdf.Open(outPath)
	if err != nil {
		t.Fatalf("opening generated PDF: %v", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		t.Fatalf("extracting PDF text: %v", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		t.Fatalf("reading PDF text: %v", err)
	}

	text := buf.String()
	for _, want := range []string{"Handbook", "Introduction", "Welcome", "Setup"} {
		if !strings.Contains(text, want) {
			t.Errorf("PDF text missing %q", want)
		}
	}
}
