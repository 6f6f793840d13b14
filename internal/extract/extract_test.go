package extract

import (
	"context"
	"testing"
)

func TestExtractTextEmptyDataRejected(t *testing.T) {
	e := NewPDFExtractor()
	if _, err := e.ExtractText(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestExtractTextGarbageRejected(t *testing.T) {
	e := NewPDFExtractor()
	if _, err := e.ExtractText(context.Background(), []byte("not a pdf at all")); err == nil {
		t.Fatal("expected error for non-pdf bytes")
	}
}

func TestExtractTextHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewPDFExtractor()
	if _, err := e.ExtractText(ctx, []byte("%PDF-1.4")); err == nil {
		t.Fatal("expected context error")
	}
}
