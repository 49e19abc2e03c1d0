package mdbundle

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource   = errors.New("source directory cannot be empty")
	ErrEmptyOutput   = errors.New("output path cannot be empty")
	ErrInvalidOutput = errors.New("output path must have a .pdf extension")

	// Conversion errors.
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrRendererNotFound = errors.New("renderer binary not found on PATH")

	// Browser errors (Chrome backend).
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Output errors.
	ErrWriteMerged = errors.New("failed to write merged markdown")
	ErrWriteOutput = errors.New("failed to write output PDF")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)
