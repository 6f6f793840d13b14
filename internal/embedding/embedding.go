// Package embedding abstracts the external vector-embedding collaborator.
package embedding

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
)

// ErrUnavailable classifies embedder failures. Ingestion recovers from it
// (the document is stored without a vector); semantic search surfaces it.
var ErrUnavailable = errors.New("embedding unavailable")

// Embedder produces vectors for document bodies and for search queries.
// Implementations must be safe for concurrent use.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) (pgvector.Vector, error)
	EmbedQuery(ctx context.Context, text string) (pgvector.Vector, error)
}
