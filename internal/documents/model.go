package documents

import (
	"errors"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Document is the canonical, persisted record of one ingested file.
type Document struct {
	ID          string
	ContentHash string
	RawText     string
	DisplayName string
	Summary     string
	Category    string
	StoragePath string
	Embedding   *pgvector.Vector
	CreatedAt   time.Time
}

// ErrInvalidDocument rejects writes that would violate the persistence
// invariants: every stored document carries text and a display name.
var ErrInvalidDocument = errors.New("document missing raw text or display name")

// Validate checks the write-time invariants for a document.
func Validate(doc Document) error {
	if strings.TrimSpace(doc.RawText) == "" || strings.TrimSpace(doc.DisplayName) == "" {
		return ErrInvalidDocument
	}
	if strings.TrimSpace(doc.ContentHash) == "" {
		return errors.New("document missing content hash")
	}
	return nil
}
