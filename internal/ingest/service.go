package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"docarchive-backend/internal/documents"
	"docarchive-backend/internal/embedding"
	"docarchive-backend/internal/filing"
	"docarchive-backend/internal/metadata"
	"docarchive-backend/internal/normalize"
	"docarchive-backend/internal/shared/metrics"
	"docarchive-backend/internal/shared/telemetry"
	"docarchive-backend/internal/shared/util"
)

// TextExtractor is the external byte-to-text collaborator contract.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// MetadataExtractor is the validated structured-metadata contract.
type MetadataExtractor interface {
	Extract(ctx context.Context, text string) (metadata.FileMetadata, error)
}

// Outcome is the result of a completed ingestion: either a newly stored
// document or the identity of the existing one when the upload was a
// content duplicate. Duplicates are an expected outcome, not an error.
type Outcome struct {
	FileID   string
	Status   documents.WriteStatus
	Document documents.Document
}

// Service sequences one idempotent ingestion pipeline per uploaded file.
// All collaborator handles are injected and shared across requests; the
// service itself holds no per-request state.
type Service struct {
	Extractor  TextExtractor
	Metadata   MetadataExtractor
	Embedder   embedding.Embedder
	Resolver   filing.CategoryResolver
	Filer      *filing.Filer
	Store      documents.Store
	StagingDir string
}

// Ingest runs the pipeline for one uploaded file:
// stage to disk, extract, normalize, resolve metadata, file under the
// category, embed (best effort), store with skip-on-duplicate.
// Failures before the file is relocated always remove the staged copy.
func (s *Service) Ingest(ctx context.Context, fileID, fileName string, data []byte) (Outcome, error) {
	started := time.Now()
	metrics.IncIngestStarted()

	job := &UploadJob{FileID: fileID, FileName: fileName, Stage: StageReceived}

	// An unusable client-supplied name is the caller's fault, not a disk
	// fault; it gets its own classification.
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Outcome{}, s.fail(job, KindInvalidName, err)
	}

	stagedPath, err := s.stage(ctx, fileID, sanitized, data)
	if err != nil {
		return Outcome{}, s.fail(job, KindFiling, err)
	}
	job.StagedPath = stagedPath
	relocated := false
	defer func() {
		if !relocated {
			_ = os.Remove(stagedPath)
		}
	}()

	rawText, err := s.Extractor.ExtractText(ctx, data)
	if err != nil {
		return Outcome{}, s.fail(job, KindExtraction, err)
	}
	job.Stage = StageExtracted

	text := normalize.Clean(rawText)
	if strings.TrimSpace(text) == "" {
		return Outcome{}, s.fail(job, KindEmptyContent, fmt.Errorf("no text extracted from upload"))
	}
	job.Stage = StageNormalized

	meta, err := s.Metadata.Extract(ctx, text)
	if err != nil {
		return Outcome{}, s.fail(job, KindMetadata, err)
	}
	job.Stage = StageMetadataResolved

	category := s.Resolver.Resolve(meta.Kategorie, text)
	// The model proposes a bare name; keep the upload's extension.
	canonicalName := meta.Dateiname
	if filepath.Ext(canonicalName) == "" {
		canonicalName += filepath.Ext(fileName)
	}
	storagePath, err := s.Filer.File(stagedPath, category, canonicalName)
	if err != nil {
		return Outcome{}, s.fail(job, KindFiling, err)
	}
	relocated = true
	job.Stage = StageFiled

	// Embedding is best effort: lexical retrieval must stay available
	// even when the embedding collaborator is degraded.
	var vec *pgvector.Vector
	if v, err := s.Embedder.EmbedDocument(ctx, meta.Inhalt); err != nil {
		telemetry.Warn("ingest.embedding.skipped", map[string]any{
			"file_id": fileID,
			"err":     err.Error(),
		})
	} else {
		vec = &v
		job.Stage = StageEmbedded
	}

	doc := documents.Document{
		ID:          fileID,
		ContentHash: util.HashContent(text),
		RawText:     text,
		DisplayName: meta.Dateiname,
		Summary:     meta.Inhalt,
		Category:    category,
		StoragePath: storagePath,
		Embedding:   vec,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := s.Store.Write(ctx, doc)
	if err != nil {
		return Outcome{}, s.fail(job, KindStore, err)
	}
	job.Stage = StageStored

	switch res.Status {
	case documents.WriteDuplicateSkipped:
		metrics.IncIngestDuplicate()
	default:
		metrics.IncIngestStored()
	}
	metrics.ObserveIngestDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	job.Stage = StageDone

	telemetry.Info("ingest.complete", map[string]any{
		"file_id":  fileID,
		"status":   string(res.Status),
		"category": res.Document.Category,
	})

	return Outcome{FileID: fileID, Status: res.Status, Document: res.Document}, nil
}

// Recent lists the newest stored documents.
func (s *Service) Recent(ctx context.Context, limit int) ([]documents.Document, error) {
	return s.Store.ListRecent(ctx, limit)
}

func (s *Service) stage(ctx context.Context, fileID, sanitized string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.StagingDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	// The file id prefix keeps concurrent jobs on disjoint staging files.
	path := filepath.Join(s.StagingDir, fileID+"_"+sanitized)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return path, nil
}

func (s *Service) fail(job *UploadJob, kind FailureKind, err error) error {
	job.Stage = StageFailed
	metrics.IncIngestFailed()
	telemetry.Error("ingest.failed", map[string]any{
		"file_id": job.FileID,
		"kind":    string(kind),
		"err":     err.Error(),
	})
	return &Error{Kind: kind, FileID: job.FileID, Err: err}
}
