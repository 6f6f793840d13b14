package ingest

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docarchive-backend/internal/documents"
	"docarchive-backend/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20 // 10MB

// Handler wires HTTP upload handling to the ingestion service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		fileHeader, err = c.FormFile("file")
	}
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "pdf file is required", nil)
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF files are allowed", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	fileID := uuid.NewString()
	c.Set("fileId", fileID)

	outcome, err := h.Svc.Ingest(c.Request.Context(), fileID, fileHeader.Filename, data)
	if err != nil {
		h.respondError(c, fileID, err)
		return
	}

	doc := outcome.Document
	body := gin.H{
		"fileId":      doc.ID,
		"displayName": doc.DisplayName,
		"category":    doc.Category,
		"storagePath": doc.StoragePath,
		"previewText": doc.Summary,
		"outcome":     string(outcome.Status),
	}

	if outcome.Status == documents.WriteDuplicateSkipped {
		respond.JSON(c, http.StatusOK, body)
		return
	}
	respond.JSON(c, http.StatusCreated, body)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 50 {
		limit = 50
	}

	docs, err := h.Svc.Recent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	resp := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, gin.H{
			"fileId":      doc.ID,
			"displayName": doc.DisplayName,
			"category":    doc.Category,
			"storagePath": doc.StoragePath,
			"createdAt":   doc.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}

// respondError maps pipeline failures to HTTP statuses. Only the mapped
// kind and message leave the process, never collaborator internals.
func (h *Handler) respondError(c *gin.Context, fileID string, err error) {
	var pipeErr *Error
	if !errors.As(err, &pipeErr) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process upload", gin.H{"fileId": fileID})
		return
	}

	details := gin.H{"fileId": pipeErr.FileID}
	switch pipeErr.Kind {
	case KindInvalidName:
		respond.Error(c, http.StatusBadRequest, string(pipeErr.Kind), "file name is not usable", details)
	case KindExtraction:
		respond.Error(c, http.StatusBadRequest, string(pipeErr.Kind), "could not extract text from PDF", details)
	case KindEmptyContent:
		respond.Error(c, http.StatusBadRequest, string(pipeErr.Kind), "document contains no extractable text", details)
	case KindMetadata:
		respond.Error(c, http.StatusBadGateway, string(pipeErr.Kind), "metadata model returned an unusable response", details)
	case KindFiling:
		respond.Error(c, http.StatusInternalServerError, string(pipeErr.Kind), "could not file the document", details)
	case KindStore:
		respond.Error(c, http.StatusInternalServerError, string(pipeErr.Kind), "could not persist the document", details)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process upload", details)
	}
}
