package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is the API version reported by the health endpoint
const Version = "1.0.0"

// catalogCounter reports the size of the loaded catalog
type catalogCounter interface {
	Count() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	catalog catalogCounter
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog catalogCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Dishes    int       `json:"dishes"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Dishes:    h.catalog.Count(),
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}

// Home handles GET / with a plain greeting
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello"))
}
