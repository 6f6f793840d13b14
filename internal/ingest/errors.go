package ingest

import "fmt"

// FailureKind is the machine-checkable classification of a failed ingestion.
type FailureKind string

const (
	KindInvalidName  FailureKind = "invalid_file_name"
	KindExtraction   FailureKind = "extraction_error"
	KindEmptyContent FailureKind = "empty_content"
	KindMetadata     FailureKind = "metadata_extraction_error"
	KindFiling       FailureKind = "filing_error"
	KindStore        FailureKind = "store_error"
)

// Error is a failed ingestion. It always carries the job's file id so a
// caller can correlate the failure with the original upload.
type Error struct {
	Kind   FailureKind
	FileID string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ingest %s [%s]: %v", e.FileID, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
