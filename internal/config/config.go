// Package config loads and validates the mdbundle YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdbundle/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidEngine   = errors.New("invalid engine")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Engine name constants.
const (
	MarkdownEngineGoldmark = "goldmark"
	MarkdownEnginePandoc   = "pandoc"
	PDFEngineChrome        = "chrome"
	PDFEngineWkhtmltopdf   = "wkhtmltopdf"
)

// Field length limits.
const (
	MaxSeparatorLength     = 100 // between-document marker
	MaxContentsTitleLength = 100 // heading above generated contents lists
	MaxStyleLength         = 500 // style name or path
	MaxPageSizeLength      = 10  // "letter", "a4", "legal"
	MaxOrientationLength   = 10  // "portrait", "landscape"
)

// Config holds all configuration for a bundle run.
type Config struct {
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	Merge   MergeConfig  `yaml:"merge"`
	Style   StyleConfig  `yaml:"style"`
	Page    PageConfig   `yaml:"page"`
	Engine  EngineConfig `yaml:"engine"`
	Timeout string       `yaml:"timeout"` // Go duration string, e.g. "2m"
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default docs directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	MergedPath string `yaml:"mergedPath"` // Intermediate Markdown path (empty = temp file)
}

// MergeConfig defines merged-document shaping options.
type MergeConfig struct {
	Separator        string `yaml:"separator"`        // Empty = "\n\n---\n\n"
	ContentsTitle    string `yaml:"contentsTitle"`    // Empty = "Contents"
	NoContents       bool   `yaml:"noContents"`       // Disable generated contents lists
	NoSectionNumbers bool   `yaml:"noSectionNumbers"` // Disable 1.2.3 numbering
}

// StyleConfig defines styling options.
type StyleConfig struct {
	Name    string `yaml:"name"`    // Embedded style name or CSS file path
	CSSFile string `yaml:"cssFile"` // Extra CSS appended after the base style
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// EngineConfig selects the conversion backends.
type EngineConfig struct {
	Markdown string `yaml:"markdown"` // "goldmark" (default) or "pandoc"
	PDF      string `yaml:"pdf"`      // "chrome" (default) or "wkhtmltopdf"
}

// Validate checks engine names, timeout syntax, and field lengths.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	switch c.Engine.Markdown {
	case "", MarkdownEngineGoldmark, MarkdownEnginePandoc:
	default:
		return fmt.Errorf("%w: engine.markdown %q (must be goldmark or pandoc)", ErrInvalidEngine, c.Engine.Markdown)
	}

	switch c.Engine.PDF {
	case "", PDFEngineChrome, PDFEngineWkhtmltopdf:
	default:
		return fmt.Errorf("%w: engine.pdf %q (must be chrome or wkhtmltopdf)", ErrInvalidEngine, c.Engine.PDF)
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, c.Timeout)
		}
	}

	if err := validateFieldLength("merge.separator", c.Merge.Separator, MaxSeparatorLength); err != nil {
		return err
	}
	if err := validateFieldLength("merge.contentsTitle", c.Merge.ContentsTitle, MaxContentsTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.name", c.Style.Name, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.cssFile", c.Style.CSSFile, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Timeout parses the configured timeout, or returns fallback when unset.
func (c *Config) TimeoutOr(fallback time.Duration) time.Duration {
	if c.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// DefaultConfig returns a neutral configuration using the default engines.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/mdbundle/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "mdbundle", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
