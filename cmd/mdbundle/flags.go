package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds output-control and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// mergeFlags holds flags shaping the merged document.
type mergeFlags struct {
	mergedPath       string
	separator        string
	contentsTitle    string
	noContents       bool
	noSectionNumbers bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// styleFlags holds styling flags.
type styleFlags struct {
	style string // Embedded style name, CSS file path, or raw CSS
	css   string // Extra CSS file appended after the base style
}

// engineFlags holds backend selection flags.
type engineFlags struct {
	markdown string // "goldmark" or "pandoc"
	pdf      string // "chrome" or "wkhtmltopdf"
}

// bundleFlags holds all CLI flags.
type bundleFlags struct {
	common  commonFlags
	merge   mergeFlags
	page    pageFlags
	style   styleFlags
	engine  engineFlags
	timeout string
	version bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addMergeFlags adds merged-document flags to a FlagSet.
func addMergeFlags(fs *flag.FlagSet, f *mergeFlags) {
	fs.StringVar(&f.mergedPath, "merged", "", "keep intermediate markdown at this path")
	fs.StringVar(&f.separator, "separator", "", "document separator (default: thematic break)")
	fs.StringVar(&f.contentsTitle, "contents-title", "", "heading for generated contents lists")
	fs.BoolVar(&f.noContents, "no-contents", false, "disable generated contents lists")
	fs.BoolVar(&f.noSectionNumbers, "no-section-numbers", false, "disable hierarchical section numbering")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addStyleFlags adds styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the base style")
}

// addEngineFlags adds backend selection flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVar(&f.markdown, "md-engine", "", "markdown engine: goldmark, pandoc")
	fs.StringVar(&f.pdf, "pdf-engine", "", "PDF engine: chrome, wkhtmltopdf")
}

// parseFlags parses CLI flags and returns the positional args.
func parseFlags(args []string) (*bundleFlags, []string, error) {
	fs := flag.NewFlagSet("mdbundle", flag.ContinueOnError)
	f := &bundleFlags{}

	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-stage conversion timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version and exit")

	addCommonFlags(fs, &f.common)
	addMergeFlags(fs, &f.merge)
	addPageFlags(fs, &f.page)
	addStyleFlags(fs, &f.style)
	addEngineFlags(fs, &f.engine)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
