package ragmodel

import (
	"errors"
	"fmt"
)

// Terminal ingestion failures. Every one of these is attributable to exactly
// one document and is never retried by the pipeline itself.
var (
	// ErrUnsupportedFormat rejects a format tag outside the supported set,
	// before any bytes are touched.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyContent means extraction succeeded but produced no usable text.
	ErrEmptyContent = errors.New("empty document")

	// ErrEmptyResult means chunking retained nothing; a document made of
	// fragments under the minimum chunk size lands here, not at chunk_count=0.
	ErrEmptyResult = errors.New("no retainable chunks")
)

// ExtractionError wraps a parse failure for a declared format: corrupt bytes,
// wrong encoding, password-protected file. Terminal for the document.
type ExtractionError struct {
	Format FormatTag
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("unreadable %s file: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UserMessage renders err as the human-readable failure line stored on the
// document record, truncated to limit characters.
func UserMessage(err error, limit int) string {
	var msg string
	var exErr *ExtractionError

	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		msg = err.Error()
	case errors.As(err, &exErr):
		msg = exErr.Error()
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrEmptyResult):
		msg = err.Error()
	default:
		msg = fmt.Sprintf("ingestion failed: %v", err)
	}

	if limit > 0 && len(msg) > limit {
		msg = msg[:limit]
	}
	return msg
}
