package documents

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/pgvector/pgvector-go"
)

// MemoryStore is an in-memory implementation of Store, used when no
// database is configured and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	byHash map[string]int
	docs   []Document
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byHash: make(map[string]int),
	}
}

// Write stores the document unless one with the same content hash exists,
// in which case the first-seen document is returned unchanged.
func (s *MemoryStore) Write(ctx context.Context, doc Document) (WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return WriteResult{}, err
	}
	if err := Validate(doc); err != nil {
		return WriteResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.byHash[doc.ContentHash]; ok {
		return WriteResult{Status: WriteDuplicateSkipped, Document: s.docs[idx]}, nil
	}
	s.byHash[doc.ContentHash] = len(s.docs)
	s.docs = append(s.docs, doc)
	return WriteResult{Status: WriteStored, Document: doc}, nil
}

// SearchLexical ranks documents by query term occurrences in name, summary
// and text. Documents without any match are excluded.
func (s *MemoryStore) SearchLexical(ctx context.Context, query string, limit int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []Document{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		doc   Document
		score int
	}
	matches := make([]scored, 0)
	for _, doc := range s.docs {
		haystack := strings.ToLower(doc.DisplayName + " " + doc.Summary + " " + doc.RawText)
		score := 0
		for _, term := range terms {
			score += strings.Count(haystack, term)
		}
		if score > 0 {
			matches = append(matches, scored{doc: doc, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]Document, 0, len(matches))
	for _, m := range matches {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.doc)
	}
	return out, nil
}

// SearchByVector returns documents with embeddings ordered by cosine
// similarity to the query vector. Documents without an embedding are
// invisible to semantic search.
func (s *MemoryStore) SearchByVector(ctx context.Context, vec pgvector.Vector, limit int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		doc   Document
		score float64
	}
	query := vec.Slice()
	matches := make([]scored, 0)
	for _, doc := range s.docs {
		if doc.Embedding == nil {
			continue
		}
		sim, ok := cosineSimilarity(query, doc.Embedding.Slice())
		if !ok {
			continue
		}
		matches = append(matches, scored{doc: doc, score: sim})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]Document, 0, len(matches))
	for _, m := range matches {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.doc)
	}
	return out, nil
}

// ListRecent returns documents newest first.
func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	docs := make([]Document, len(s.docs))
	copy(docs, s.docs)
	s.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Ping reports the store as healthy.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

var _ Store = (*MemoryStore)(nil)
