package parser

import (
	"errors"
	"fmt"
)

// Per-file failure taxonomy. The aggregator matches on these to decide
// between "skipped" (expected bad input) and "error" (unexpected).
var (
	// ErrMalformedFilename means the file name lacks a parseable date range.
	ErrMalformedFilename = errors.New("file name does not contain a valid date range")

	// ErrUnparseableDate means a date string matched the range pattern but
	// no accepted format parses it.
	ErrUnparseableDate = errors.New("could not parse date value")

	// ErrMissingSheet means a required named sheet is absent.
	ErrMissingSheet = errors.New("missing expected sheet")

	// ErrLayoutMismatch means the sheet is smaller than the configured
	// layout requires.
	ErrLayoutMismatch = errors.New("sheet is smaller than the configured layout")
)

// LayoutMismatchError carries the observed and required sheet footprint.
type LayoutMismatchError struct {
	Rows, Cols         int
	NeedRows, NeedCols int
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("sheet is %dx%d; layout needs at least %d rows and %d columns",
		e.Rows, e.Cols, e.NeedRows, e.NeedCols)
}

func (e *LayoutMismatchError) Unwrap() error { return ErrLayoutMismatch }
