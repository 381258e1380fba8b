// Package parsererror defines the typed errors produced while turning statements into transactions.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoTransactions is returned when a statement yields no valid transaction at all.
// Callers report it as a distinct outcome rather than a generic failure.
var ErrNoTransactions = errors.New("no valid transactions found")

// RejectReason explains why a block did not produce a transaction.
type RejectReason string

const (
	ReasonOK              RejectReason = "ok"
	ReasonMissingMerchant RejectReason = "missing-merchant"
	ReasonMissingAmount   RejectReason = "missing-amount"
	ReasonMissingDate     RejectReason = "missing-date"
	ReasonInvalidDate     RejectReason = "invalid-date"
)

// Rejected reports whether the reason drops the block.
func (r RejectReason) Rejected() bool {
	return r != ReasonOK
}

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input that does not conform to the expected format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s: %v",
			e.FilePath, e.Msg, e.ExpectedFormat, e.Err)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents required data that could not be extracted
// even though the input format itself was readable.
type DataExtractionError struct {
	FilePath       string
	FieldName      string
	RawDataSnippet string
	Reason         string
}

func (e *DataExtractionError) Error() string {
	if e.RawDataSnippet != "" {
		return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s. Raw data snippet: '%s'",
			e.FilePath, e.FieldName, e.Reason, e.RawDataSnippet)
	}
	return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s",
		e.FilePath, e.FieldName, e.Reason)
}

// BlockRejectedError records a statement block that was dropped.
type BlockRejectedError struct {
	Index   int
	Reason  RejectReason
	Snippet string
}

func (e *BlockRejectedError) Error() string {
	return fmt.Sprintf("block %d rejected: %s", e.Index, e.Reason)
}
