// Package mdbundle merges a directory tree of Markdown documentation into a
// single document and renders it to PDF.
//
// # Quick Start
//
// Create a bundler, bundle a docs directory, and close when done:
//
//	b, err := mdbundle.NewBundler()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	result, err := b.Bundle(ctx, mdbundle.Job{
//	    SourceDir:  "docs",
//	    OutputPath: "handbook.pdf",
//	})
//
// # Pipeline
//
// A bundle run moves through these stages:
//
//  1. Collection: walk the source tree, parse frontmatter (title, weight,
//     description), order pages by weight then name.
//  2. Merge: concatenate pages into one Markdown buffer with generated
//     section headings, contents lists, and rewritten relative links.
//  3. Markdown to HTML via Goldmark (GFM, syntax highlighting), or the
//     pandoc CLI when configured.
//  4. HTML to PDF via headless Chrome (go-rod), or the wkhtmltopdf CLI
//     when configured.
//
// The merged Markdown is written to an intermediate file before conversion.
// By default it lives in the system temp directory and is removed after a
// successful run; set Job.MergedPath to keep it at a known location.
//
// # Configuration
//
// Use functional options to customize the bundler:
//
//	b, err := mdbundle.NewBundler(
//	    mdbundle.WithTimeout(5 * time.Minute),
//	    mdbundle.WithStyle("plain"),
//	    mdbundle.WithoutContents(),
//	)
//
// # Renderer Backends
//
// Both conversion steps sit behind narrow interfaces (MarkdownRenderer,
// PDFRenderer), so either stage can be swapped without touching collection
// or merging:
//
//	b, err := mdbundle.NewBundler(
//	    mdbundle.WithMarkdownRenderer(mdbundle.NewPandocRenderer()),
//	    mdbundle.WithPDFRenderer(mdbundle.NewWkhtmltopdfRenderer(2 * time.Minute)),
//	)
//
// # Browser Requirements
//
// The default PDF backend requires Chrome/Chromium. The go-rod library
// downloads a managed Chromium on first run (~/.cache/rod/browser/). For
// containers and CI, set ROD_NO_SANDBOX=1 to disable the Chrome sandbox and
// ROD_BROWSER_BIN to point at a pre-installed binary.
package mdbundle
