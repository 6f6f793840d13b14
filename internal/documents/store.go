package documents

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// WriteStatus reports the outcome of a write under the skip-on-duplicate policy.
type WriteStatus string

const (
	// WriteStored means a new document row was created.
	WriteStored WriteStatus = "stored"
	// WriteDuplicateSkipped means an identical-content document already
	// existed; the new write was discarded and the existing record returned.
	WriteDuplicateSkipped WriteStatus = "duplicate_skipped"
)

// WriteResult carries the write status and the authoritative document:
// the new one when stored, the first-seen one when skipped.
type WriteResult struct {
	Status   WriteStatus
	Document Document
}

// Store is the document store collaborator contract. The store, not the
// caller, is the atomic arbiter of content-hash uniqueness.
// Implementations must be safe for concurrent use.
type Store interface {
	Write(ctx context.Context, doc Document) (WriteResult, error)
	SearchLexical(ctx context.Context, query string, limit int) ([]Document, error)
	SearchByVector(ctx context.Context, vec pgvector.Vector, limit int) ([]Document, error)
	ListRecent(ctx context.Context, limit int) ([]Document, error)
	Ping(ctx context.Context) error
}
