// Package metadata obtains structured document metadata from an external
// generation model and enforces the contract on its output.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Only a bounded prefix is sent to the model. This is deliberately lossy:
// name and category are usually evident in the opening of a document, and
// the bound keeps cost and latency of the external call predictable.
const maxPromptChars = 2000

// FileMetadata is the strict three-field contract with the generation model.
// Field names follow the domain vocabulary the model is prompted with.
type FileMetadata struct {
	Dateiname string `json:"dateiname"`
	Inhalt    string `json:"inhalt"`
	Kategorie string `json:"kategorie"`
}

// Generator abstracts the external structured-generation collaborator.
// Implementations return the model's raw JSON output without interpreting it.
type Generator interface {
	GenerateStructured(ctx context.Context, documentText string, schema map[string]any) (json.RawMessage, error)
}

// ExtractionError reports a failed or malformed metadata extraction.
// Ingestion treats it as fatal: no document is persisted without usable
// name and category.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("metadata extraction: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Service invokes the generator and validates its response against the
// contract schema before use.
type Service struct {
	Gen Generator
}

// Extract returns validated metadata for the given normalized text.
// The model is non-deterministic; repeated calls may yield different output.
func (s *Service) Extract(ctx context.Context, text string) (FileMetadata, error) {
	prefix := truncate(text, maxPromptChars)

	raw, err := s.Gen.GenerateStructured(ctx, prefix, Schema())
	if err != nil {
		return FileMetadata{}, &ExtractionError{Err: err}
	}

	if err := validateAgainstSchema(Schema(), raw); err != nil {
		return FileMetadata{}, &ExtractionError{Err: err}
	}

	var meta FileMetadata
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&meta); err != nil {
		return FileMetadata{}, &ExtractionError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if strings.TrimSpace(meta.Dateiname) == "" {
		return FileMetadata{}, &ExtractionError{Err: fmt.Errorf("empty dateiname")}
	}
	return meta, nil
}

// truncate cuts at a rune boundary at or below limit bytes so the prefix
// stays valid UTF-8 (umlauts are routine in this corpus).
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
