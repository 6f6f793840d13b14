package health

import (
	"context"
	"errors"
	"testing"

	"github.com/pgvector/pgvector-go"

	"docarchive-backend/internal/documents"
)

type pingStore struct {
	err error
}

func (p *pingStore) Write(ctx context.Context, doc documents.Document) (documents.WriteResult, error) {
	return documents.WriteResult{}, errors.New("not implemented")
}

func (p *pingStore) SearchLexical(ctx context.Context, query string, limit int) ([]documents.Document, error) {
	return nil, nil
}

func (p *pingStore) SearchByVector(ctx context.Context, vec pgvector.Vector, limit int) ([]documents.Document, error) {
	return nil, nil
}

func (p *pingStore) ListRecent(ctx context.Context, limit int) ([]documents.Document, error) {
	return nil, nil
}

func (p *pingStore) Ping(ctx context.Context) error { return p.err }

func TestStatusHealthy(t *testing.T) {
	svc := NewService(&pingStore{})
	report := svc.Status(context.Background())
	if report.Status != "healthy" {
		t.Fatalf("expected healthy, got %+v", report)
	}
}

func TestStatusUnhealthyIncludesDetail(t *testing.T) {
	svc := NewService(&pingStore{err: errors.New("connection refused")})
	report := svc.Status(context.Background())
	if report.Status != "unhealthy" {
		t.Fatalf("expected unhealthy, got %+v", report)
	}
	if report.Detail == "" {
		t.Fatal("expected non-empty detail for unhealthy report")
	}
}

func TestStatusNilStore(t *testing.T) {
	svc := NewService(nil)
	report := svc.Status(context.Background())
	if report.Status != "unhealthy" || report.Detail == "" {
		t.Fatalf("expected unhealthy with detail, got %+v", report)
	}
}
