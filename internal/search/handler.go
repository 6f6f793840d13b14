package search

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docarchive-backend/internal/shared/server/respond"
)

// Handler wires the search endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("query")

	mode := ModeSemantic
	if raw := strings.TrimSpace(c.Query("mode")); raw != "" {
		mode = Mode(strings.ToLower(raw))
	}
	c.Set("searchMode", string(mode))

	results, err := h.Svc.Search(c.Request.Context(), query, mode)
	if err != nil {
		var unavailable *EmbeddingUnavailableError
		var unknownMode *ErrUnknownMode
		switch {
		case errors.As(err, &unavailable):
			respond.Error(c, http.StatusServiceUnavailable, "embedding_unavailable", "semantic search is temporarily unavailable", nil)
		case errors.As(err, &unknownMode):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search documents", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, results)
}
