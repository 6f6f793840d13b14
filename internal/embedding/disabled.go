package embedding

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// Disabled is the embedder used when no provider is configured. Every call
// reports ErrUnavailable, which keeps ingestion lexical-only and makes
// semantic search fail loudly instead of returning wrong results.
type Disabled struct{}

func (Disabled) EmbedDocument(ctx context.Context, text string) (pgvector.Vector, error) {
	return pgvector.Vector{}, fmt.Errorf("%w: no embedding provider configured", ErrUnavailable)
}

func (Disabled) EmbedQuery(ctx context.Context, text string) (pgvector.Vector, error) {
	return pgvector.Vector{}, fmt.Errorf("%w: no embedding provider configured", ErrUnavailable)
}

var _ Embedder = Disabled{}
