package main

import (
	"context"
	"errors"
	"os"

	mdbundle "github.com/alnah/go-mdbundle"
	"github.com/alnah/go-mdbundle/internal/collect"
	"github.com/alnah/go-mdbundle/internal/config"
	"github.com/alnah/go-mdbundle/internal/merge"
)

// Exit codes for the mdbundle CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful bundle
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Source not found, read/write failures
	ExitConvert = 4 // Converter/browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter errors (exit 4)
	if errors.Is(err, mdbundle.ErrHTMLConversion) ||
		errors.Is(err, mdbundle.ErrPDFGeneration) ||
		errors.Is(err, mdbundle.ErrRendererNotFound) ||
		errors.Is(err, mdbundle.ErrBrowserConnect) ||
		errors.Is(err, mdbundle.ErrPageCreate) ||
		errors.Is(err, mdbundle.ErrPageLoad) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitConvert
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, collect.ErrSourceNotFound) ||
		errors.Is(err, collect.ErrNotDirectory) ||
		errors.Is(err, merge.ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, mdbundle.ErrWriteMerged) ||
		errors.Is(err, mdbundle.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidEngine) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, mdbundle.ErrEmptySource) ||
		errors.Is(err, mdbundle.ErrEmptyOutput) ||
		errors.Is(err, mdbundle.ErrInvalidOutput) ||
		errors.Is(err, mdbundle.ErrInvalidPageSize) ||
		errors.Is(err, mdbundle.ErrInvalidOrientation) ||
		errors.Is(err, mdbundle.ErrInvalidMargin) {
		return ExitUsage
	}

	return ExitGeneral
}
