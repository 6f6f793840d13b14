package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// PGStore implements Store on Postgres: full-text ranking for lexical
// search and pgvector nearest-neighbor for semantic search.
type PGStore struct {
	DB *sql.DB
}

const documentColumns = "id, content_hash, raw_text, display_name, summary, category, storage_path, created_at"

// Write inserts the document with ON CONFLICT DO NOTHING on the content
// hash. When the insert is skipped, the first-seen row is read back and
// returned; the unique constraint makes the dedup decision atomic even
// across concurrent uploads.
func (s *PGStore) Write(ctx context.Context, doc Document) (WriteResult, error) {
	if err := Validate(doc); err != nil {
		return WriteResult{}, err
	}

	const insert = `
INSERT INTO documents (id, content_hash, raw_text, display_name, summary, category, storage_path, embedding, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (content_hash) DO NOTHING`

	res, err := s.DB.ExecContext(ctx, insert,
		doc.ID,
		doc.ContentHash,
		doc.RawText,
		doc.DisplayName,
		doc.Summary,
		doc.Category,
		doc.StoragePath,
		nullableVector(doc.Embedding),
		doc.CreatedAt,
	)
	if err != nil {
		return WriteResult{}, fmt.Errorf("write document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return WriteResult{}, fmt.Errorf("write document: %w", err)
	}
	if affected > 0 {
		return WriteResult{Status: WriteStored, Document: doc}, nil
	}

	existing, err := s.getByContentHash(ctx, doc.ContentHash)
	if err != nil {
		return WriteResult{}, fmt.Errorf("read existing document: %w", err)
	}
	return WriteResult{Status: WriteDuplicateSkipped, Document: existing}, nil
}

// SearchLexical runs full-text keyword ranking over name, summary and text.
func (s *PGStore) SearchLexical(ctx context.Context, query string, limit int) ([]Document, error) {
	const q = `
SELECT ` + documentColumns + `
FROM documents
WHERE to_tsvector('simple', display_name || ' ' || summary || ' ' || raw_text) @@ plainto_tsquery('simple', $1)
ORDER BY ts_rank(to_tsvector('simple', display_name || ' ' || summary || ' ' || raw_text), plainto_tsquery('simple', $1)) DESC
LIMIT $2`

	rows, err := s.DB.QueryContext(ctx, q, query, limit)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// SearchByVector runs cosine nearest-neighbor over documents that carry an
// embedding. Rows without a vector never appear in semantic results.
func (s *PGStore) SearchByVector(ctx context.Context, vec pgvector.Vector, limit int) ([]Document, error) {
	const q = `
SELECT ` + documentColumns + `
FROM documents
WHERE embedding IS NOT NULL
ORDER BY embedding <=> $1
LIMIT $2`

	rows, err := s.DB.QueryContext(ctx, q, vec, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// ListRecent returns documents newest first.
func (s *PGStore) ListRecent(ctx context.Context, limit int) ([]Document, error) {
	const q = `
SELECT ` + documentColumns + `
FROM documents
ORDER BY created_at DESC
LIMIT $1`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Ping verifies store connectivity.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *PGStore) getByContentHash(ctx context.Context, contentHash string) (Document, error) {
	const q = `
SELECT ` + documentColumns + `
FROM documents
WHERE content_hash = $1
LIMIT 1`

	var doc Document
	err := s.DB.QueryRowContext(ctx, q, contentHash).Scan(
		&doc.ID,
		&doc.ContentHash,
		&doc.RawText,
		&doc.DisplayName,
		&doc.Summary,
		&doc.Category,
		&doc.StoragePath,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, fmt.Errorf("document vanished after conflict: %w", err)
		}
		return Document{}, err
	}
	return doc, nil
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	out := make([]Document, 0)
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.ContentHash,
			&doc.RawText,
			&doc.DisplayName,
			&doc.Summary,
			&doc.Category,
			&doc.StoragePath,
			&doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullableVector(vec *pgvector.Vector) any {
	if vec == nil {
		return nil
	}
	return *vec
}

var _ Store = (*PGStore)(nil)
