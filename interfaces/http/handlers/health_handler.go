package handlers

import (
	"net/http"

	"github.com/lugondev/bbs-signatures/interfaces/http/dto"
)

// HealthHandler handles health check requests
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	response := dto.HealthResponse{
		Status:  "healthy",
		Service: "bbs-signatures-api",
		Version: "1.0.0",
	}

	writeSuccessResponse(w, response)
}
