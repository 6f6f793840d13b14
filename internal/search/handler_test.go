package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docarchive-backend/internal/documents"
	"docarchive-backend/internal/embedding"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandlerSearchDefaultsToSemantic(t *testing.T) {
	store := &fakeStore{vectorDocs: []documents.Document{
		{ID: "doc-1", DisplayName: "Mietvertrag", Category: "Verträge", StoragePath: "/archive/Verträge/Mietvertrag.pdf", Summary: "Vertrag"},
	}}
	embedder := &fakeEmbedder{}
	router := newTestRouter(&Service{Store: store, Embedder: embedder})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=wohnung", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if embedder.calls != 1 {
		t.Fatalf("expected semantic mode by default, embed calls=%d", embedder.calls)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("expected 1 result, got %d", len(body))
	}
	if body[0]["id"] != "doc-1" || body[0]["name"] != "Mietvertrag" {
		t.Fatalf("unexpected result: %v", body[0])
	}
}

func TestHandlerSearchLexicalMode(t *testing.T) {
	store := &fakeStore{lexicalDocs: []documents.Document{{ID: "doc-2", DisplayName: "Rechnung"}}}
	embedder := &fakeEmbedder{}
	router := newTestRouter(&Service{Store: store, Embedder: embedder})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=rechnung&mode=lexical", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.lexicalCalls != 1 || embedder.calls != 0 {
		t.Fatalf("expected lexical path: lexical=%d embed=%d", store.lexicalCalls, embedder.calls)
	}
}

func TestHandlerSearchEmptyQueryReturnsEmptyList(t *testing.T) {
	router := newTestRouter(&Service{Store: &fakeStore{}, Embedder: &fakeEmbedder{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestHandlerSearchEmbeddingUnavailable(t *testing.T) {
	embedder := &fakeEmbedder{err: fmt.Errorf("%w: timeout", embedding.ErrUnavailable)}
	router := newTestRouter(&Service{Store: &fakeStore{}, Embedder: embedder})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=wohnung&mode=semantic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Error.Code != "embedding_unavailable" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestHandlerSearchUnknownMode(t *testing.T) {
	router := newTestRouter(&Service{Store: &fakeStore{}, Embedder: &fakeEmbedder{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=x&mode=fuzzy", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
