package engine

import (
	"fmt"
	"strings"
)

// The terminal parse errors. None are retried internally; per-block
// failures inside a dialect parser are dropped locally and never surface
// here.

// EmptyDocumentError signals that no text could be reconstructed from the
// source document.
type EmptyDocumentError struct{}

func (e *EmptyDocumentError) Error() string {
	return "document contains no extractable text; the file may be empty, password-protected, or corrupted"
}

// UnreadableTextError signals that extraction produced text that is not
// readable statement content: custom font encodings or image-based pages.
type UnreadableTextError struct{}

func (e *UnreadableTextError) Error() string {
	return "extracted text is not readable; the PDF may use custom font encodings or contain scanned images"
}

// UnsupportedFormatError signals that no registered dialect recognized the
// statement.
type UnsupportedFormatError struct {
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported statement format; supported banks: %s",
		strings.Join(e.Supported, ", "))
}

// NoTransactionsFoundError signals that a dialect matched but its parser
// produced nothing, usually because of format drift or the wrong file.
type NoTransactionsFoundError struct {
	Bank string
}

func (e *NoTransactionsFoundError) Error() string {
	return fmt.Sprintf("no transactions found in %s statement; the layout may have changed or the file may not be a statement", e.Bank)
}

// TooManyInvalidDatesError signals a broken date-extraction path: more
// than half of the produced transactions have non-ISO dates.
type TooManyInvalidDatesError struct {
	Invalid int
	Total   int
}

func (e *TooManyInvalidDatesError) Error() string {
	return fmt.Sprintf("%d of %d transactions have malformed dates; refusing to return unreliable data", e.Invalid, e.Total)
}
