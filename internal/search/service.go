// Package search dispatches lexical and semantic retrieval and normalizes
// both into one response shape.
package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"docarchive-backend/internal/documents"
	"docarchive-backend/internal/embedding"
	"docarchive-backend/internal/shared/metrics"
)

// Mode selects the retrieval strategy. The two modes are never fused in a
// single call; ordering is whatever the chosen mode's ranking produces.
type Mode string

const (
	ModeLexical  Mode = "lexical"
	ModeSemantic Mode = "semantic"
)

// snippetLength bounds the preview returned per result. Full content stays
// available on the stored document; this is response shaping only.
const snippetLength = 200

// Result is the normalized shape shared by both retrieval modes.
type Result struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Category    string `json:"category"`
	StoragePath string `json:"path"`
	Snippet     string `json:"content"`
}

// EmbeddingUnavailableError distinguishes a degraded embedder from other
// search failures. Semantic search surfaces it instead of silently falling
// back to lexical results, which would change result semantics.
type EmbeddingUnavailableError struct {
	Err error
}

func (e *EmbeddingUnavailableError) Error() string {
	return fmt.Sprintf("embedding unavailable: %v", e.Err)
}

func (e *EmbeddingUnavailableError) Unwrap() error { return e.Err }

// ErrUnknownMode rejects modes other than lexical and semantic.
type ErrUnknownMode struct {
	Mode string
}

func (e *ErrUnknownMode) Error() string {
	return fmt.Sprintf("unknown search mode %q", e.Mode)
}

// Service orchestrates retrieval against the store and the embedder.
type Service struct {
	Store    documents.Store
	Embedder embedding.Embedder
	Limit    int
}

// Search runs one query in the requested mode. An empty query returns an
// empty list without touching any collaborator. Results are either a full
// normalized list or an error, never a mixture.
func (s *Service) Search(ctx context.Context, query string, mode Mode) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}
	metrics.IncSearch()

	limit := s.Limit
	if limit <= 0 {
		limit = 10
	}

	var (
		docs []documents.Document
		err  error
	)
	switch mode {
	case ModeLexical:
		docs, err = s.Store.SearchLexical(ctx, query, limit)
	case ModeSemantic:
		vec, embedErr := s.Embedder.EmbedQuery(ctx, query)
		if embedErr != nil {
			return nil, &EmbeddingUnavailableError{Err: embedErr}
		}
		docs, err = s.Store.SearchByVector(ctx, vec, limit)
	default:
		return nil, &ErrUnknownMode{Mode: string(mode)}
	}
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		results = append(results, Result{
			ID:          doc.ID,
			DisplayName: doc.DisplayName,
			Category:    doc.Category,
			StoragePath: doc.StoragePath,
			Snippet:     truncate(doc.Summary, snippetLength),
		})
	}
	return results, nil
}

// truncate cuts at a rune boundary at or below limit bytes so the snippet
// never ends in a mangled multi-byte character.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
