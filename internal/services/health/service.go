// Package health reports service liveness and store reachability.
package health

import (
	"context"

	"docarchive-backend/internal/documents"
)

// Report is the health check payload. Detail is always non-empty when the
// status is unhealthy so operators see a cause, never a bare flag.
type Report struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	Store documents.Store
}

// NewService constructs a new health service.
func NewService(store documents.Store) *Service {
	return &Service{Store: store}
}

// Status pings the document store. A failing or missing store degrades the
// report; it never panics and never errors.
func (s *Service) Status(ctx context.Context) Report {
	if s.Store == nil {
		return Report{Status: "unhealthy", Detail: "document store not configured"}
	}
	if err := s.Store.Ping(ctx); err != nil {
		return Report{Status: "unhealthy", Detail: err.Error()}
	}
	return Report{Status: "healthy"}
}
