package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbundle [flags] <docs_dir> <output.pdf>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bundle a directory of markdown documentation into a single PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  docs_dir      Directory of markdown sources (Hugo-style, _index.md sections)")
	fmt.Fprintln(w, "  output.pdf    Destination PDF path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-stage conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --version               Show version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Merged Document:")
	fmt.Fprintln(w, "      --merged <path>         Keep intermediate markdown at this path")
	fmt.Fprintln(w, "      --separator <s>         Document separator (default: thematic break)")
	fmt.Fprintln(w, "      --contents-title <s>    Heading for generated contents lists")
	fmt.Fprintln(w, "      --no-contents           Disable generated contents lists")
	fmt.Fprintln(w, "      --no-section-numbers    Disable hierarchical section numbering")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>             CSS style name or file path")
	fmt.Fprintln(w, "      --css <path>            Extra CSS file appended after the base style")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engines:")
	fmt.Fprintln(w, "      --md-engine <s>         Markdown engine: goldmark (default), pandoc")
	fmt.Fprintln(w, "      --pdf-engine <s>        PDF engine: chrome (default), wkhtmltopdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed progress")
}
