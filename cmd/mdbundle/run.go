package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mdbundle "github.com/alnah/go-mdbundle"
	"github.com/alnah/go-mdbundle/internal/assets"
	"github.com/alnah/go-mdbundle/internal/config"
	"github.com/alnah/go-mdbundle/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage   = errors.New("usage: mdbundle [flags] <docs_dir> <output.pdf>")
	ErrReadCSS = errors.New("failed to read CSS file")
)

// run parses args, builds the bundler, and executes one bundle.
func run(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "mdbundle %s\n", Version)
		return nil
	}

	// Load configuration; CLI flags win over config values
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlagsIntoConfig(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sourceDir, outputPath, err := resolvePaths(positional, cfg)
	if err != nil {
		return err
	}

	timeout := cfg.TimeoutOr(0)
	opts := buildOptions(cfg, timeout)

	job, err := buildJob(sourceDir, outputPath, cfg)
	if err != nil {
		return err
	}

	bundler, err := mdbundle.NewBundler(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := bundler.Close(); cerr != nil && flags.common.verbose {
			fmt.Fprintf(env.Stderr, "closing renderer: %v\n", cerr)
		}
	}()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Bundling %s -> %s\n", sourceDir, outputPath)
	}

	start := env.Now()
	result, err := bundler.Bundle(ctx, job)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Bundled %d document(s) into %s (%s)\n",
			result.Documents, result.OutputPath, env.Now().Sub(start).Round(time.Millisecond))
		if result.MergedPath != "" {
			fmt.Fprintf(env.Stdout, "Merged markdown kept at %s\n", result.MergedPath)
		}
	}

	return nil
}

// resolvePaths determines source directory and output path from positional
// args and config. Two args are the normal form; with input.defaultDir set
// in config, the source may be omitted.
func resolvePaths(positional []string, cfg *config.Config) (sourceDir, outputPath string, err error) {
	switch len(positional) {
	case 2:
		return positional[0], positional[1], nil
	case 1:
		if cfg.Input.DefaultDir != "" {
			return cfg.Input.DefaultDir, positional[0], nil
		}
		return "", "", fmt.Errorf("%w: missing output path or docs directory", ErrUsage)
	case 0:
		return "", "", fmt.Errorf("%w: missing arguments", ErrUsage)
	default:
		return "", "", fmt.Errorf("%w: too many arguments (%d)", ErrUsage, len(positional))
	}
}

// mergeFlagsIntoConfig merges CLI flags into config. CLI values override
// config values.
func mergeFlagsIntoConfig(flags *bundleFlags, cfg *config.Config) {
	if flags.merge.mergedPath != "" {
		cfg.Output.MergedPath = flags.merge.mergedPath
	}
	if flags.merge.separator != "" {
		cfg.Merge.Separator = flags.merge.separator
	}
	if flags.merge.contentsTitle != "" {
		cfg.Merge.ContentsTitle = flags.merge.contentsTitle
	}
	if flags.merge.noContents {
		cfg.Merge.NoContents = true
	}
	if flags.merge.noSectionNumbers {
		cfg.Merge.NoSectionNumbers = true
	}

	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	if flags.style.style != "" {
		cfg.Style.Name = flags.style.style
	}
	if flags.style.css != "" {
		cfg.Style.CSSFile = flags.style.css
	}

	if flags.engine.markdown != "" {
		cfg.Engine.Markdown = flags.engine.markdown
	}
	if flags.engine.pdf != "" {
		cfg.Engine.PDF = flags.engine.pdf
	}

	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
}

// buildOptions translates config into bundler options, including backend
// selection. Engine names were validated by cfg.Validate().
func buildOptions(cfg *config.Config, timeout time.Duration) []mdbundle.Option {
	var opts []mdbundle.Option

	if timeout > 0 {
		opts = append(opts, mdbundle.WithTimeout(timeout))
	}
	if cfg.Style.Name != "" {
		opts = append(opts, mdbundle.WithStyle(cfg.Style.Name))
	}
	if cfg.Merge.Separator != "" {
		opts = append(opts, mdbundle.WithSeparator(cfg.Merge.Separator))
	}
	if cfg.Merge.ContentsTitle != "" {
		opts = append(opts, mdbundle.WithContentsTitle(cfg.Merge.ContentsTitle))
	}
	if cfg.Merge.NoContents {
		opts = append(opts, mdbundle.WithoutContents())
	}
	if cfg.Merge.NoSectionNumbers {
		opts = append(opts, mdbundle.WithoutSectionNumbers())
	}

	if cfg.Engine.Markdown == config.MarkdownEnginePandoc {
		opts = append(opts, mdbundle.WithMarkdownRenderer(mdbundle.NewPandocRenderer()))
	}
	if cfg.Engine.PDF == config.PDFEngineWkhtmltopdf {
		opts = append(opts, mdbundle.WithPDFRenderer(mdbundle.NewWkhtmltopdfRenderer(timeout)))
	}

	return opts
}

// buildJob constructs the bundle job from resolved paths and config.
func buildJob(sourceDir, outputPath string, cfg *config.Config) (mdbundle.Job, error) {
	job := mdbundle.Job{
		SourceDir:  sourceDir,
		OutputPath: outputPath,
		MergedPath: cfg.Output.MergedPath,
	}

	if cfg.Style.CSSFile != "" {
		content, err := os.ReadFile(cfg.Style.CSSFile) // #nosec G304 -- user-provided path
		if err != nil {
			return mdbundle.Job{}, fmt.Errorf("%w: %s: %v", ErrReadCSS, cfg.Style.CSSFile, err)
		}
		job.CSS = string(content)
	}

	if cfg.Page.Size != "" || cfg.Page.Orientation != "" || cfg.Page.Margin != 0 {
		page := mdbundle.DefaultPageSettings()
		if cfg.Page.Size != "" {
			page.Size = cfg.Page.Size
		}
		if cfg.Page.Orientation != "" {
			page.Orientation = cfg.Page.Orientation
		}
		if cfg.Page.Margin != 0 {
			page.Margin = cfg.Page.Margin
		}
		job.Page = page
	}

	return job, nil
}

// withHint appends an actionable hint to errors that have one.
func withHint(err error) string {
	msg := err.Error()

	switch {
	case errors.Is(err, mdbundle.ErrBrowserConnect):
		msg += hints.ForBrowserConnect()
	case errors.Is(err, mdbundle.ErrRendererNotFound):
		msg += hints.ForToolNotFound(missingTool(msg))
	case errors.Is(err, context.DeadlineExceeded):
		msg += hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		msg += hints.ForConfigNotFound(nil)
	case errors.Is(err, assets.ErrStyleNotFound):
		msg += hints.ForStyleNotFound(assets.Styles())
	}

	return msg
}

// missingTool extracts the converter binary name from an ErrRendererNotFound
// message. The renderers append their binary name when wrapping.
func missingTool(msg string) string {
	for _, tool := range []string{"pandoc", "wkhtmltopdf"} {
		if strings.Contains(msg, tool) {
			return tool
		}
	}
	return "the converter"
}
