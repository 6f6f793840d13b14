package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type staticGenerator struct {
	resp     string
	err      error
	lastText string
}

func (g *staticGenerator) GenerateStructured(ctx context.Context, documentText string, schema map[string]any) (json.RawMessage, error) {
	_ = ctx
	_ = schema
	g.lastText = documentText
	if g.err != nil {
		return nil, g.err
	}
	return json.RawMessage(g.resp), nil
}

func TestExtractValidResponse(t *testing.T) {
	gen := &staticGenerator{resp: `{"dateiname":"Invoice_4412.pdf","inhalt":"Invoice for €500 due 2024-01-01","kategorie":"Rechnungen"}`}
	svc := &Service{Gen: gen}

	meta, err := svc.Extract(context.Background(), "Invoice #4412, amount €500, due 2024-01-01")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Dateiname != "Invoice_4412.pdf" {
		t.Fatalf("unexpected dateiname %q", meta.Dateiname)
	}
	if meta.Kategorie != "Rechnungen" {
		t.Fatalf("unexpected kategorie %q", meta.Kategorie)
	}
}

func TestExtractTruncatesPromptPrefix(t *testing.T) {
	gen := &staticGenerator{resp: `{"dateiname":"a.pdf","inhalt":"b","kategorie":"Sonstiges"}`}
	svc := &Service{Gen: gen}

	long := strings.Repeat("x", 5000)
	if _, err := svc.Extract(context.Background(), long); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(gen.lastText) != maxPromptChars {
		t.Fatalf("expected prompt truncated to %d chars, got %d", maxPromptChars, len(gen.lastText))
	}
}

func TestExtractTruncationKeepsRunesIntact(t *testing.T) {
	gen := &staticGenerator{resp: `{"dateiname":"a.pdf","inhalt":"b","kategorie":"Sonstiges"}`}
	svc := &Service{Gen: gen}

	// The leading ASCII byte misaligns the 2-byte runes so a byte-offset
	// cut would land mid-rune.
	long := "x" + strings.Repeat("ä", maxPromptChars)
	if _, err := svc.Extract(context.Background(), long); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !utf8.ValidString(gen.lastText) {
		t.Fatalf("prompt prefix is not valid UTF-8: %q", gen.lastText[len(gen.lastText)-4:])
	}
	if len(gen.lastText) > maxPromptChars {
		t.Fatalf("prompt prefix exceeds %d bytes: %d", maxPromptChars, len(gen.lastText))
	}
}

func TestExtractMissingFieldRejected(t *testing.T) {
	gen := &staticGenerator{resp: `{"dateiname":"a.pdf","inhalt":"b"}`}
	svc := &Service{Gen: gen}

	_, err := svc.Extract(context.Background(), "text")
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestExtractExtraFieldRejected(t *testing.T) {
	gen := &staticGenerator{resp: `{"dateiname":"a.pdf","inhalt":"b","kategorie":"c","extra":"d"}`}
	svc := &Service{Gen: gen}

	var extractionErr *ExtractionError
	if _, err := svc.Extract(context.Background(), "text"); !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError for extra field, got %v", err)
	}
}

func TestExtractUnparsableResponseRejected(t *testing.T) {
	gen := &staticGenerator{resp: `{not json`}
	svc := &Service{Gen: gen}

	var extractionErr *ExtractionError
	if _, err := svc.Extract(context.Background(), "text"); !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError for unparsable response, got %v", err)
	}
}

func TestExtractGeneratorFailureWrapped(t *testing.T) {
	cause := errors.New("model down")
	gen := &staticGenerator{err: cause}
	svc := &Service{Gen: gen}

	_, err := svc.Extract(context.Background(), "text")
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
