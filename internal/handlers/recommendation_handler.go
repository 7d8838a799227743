package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
	"github.com/levi3112/Dishes-Recommendation-API/internal/service"
)

// maxBodyBytes caps the size of a recommendation request body
const maxBodyBytes = 1 << 20

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	service *service.RecommendationService
	log     *slog.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *service.RecommendationService, log *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		log:     log,
	}
}

// Recommend handles POST /api/recommend
// The body is a personal profile; omitted fields and an empty body take the defaults
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, true)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	info := models.DefaultPersonalInformation()
	if err := decodeBody(w, r, &info); err != nil {
		h.log.Warn("failed to decode recommendation request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	rec, err := h.service.Recommend(r.Context(), info, filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, rec, h.log)
}

// RecommendCustom handles POST /api/recommend/custom
// The body carries explicit nutrient bounds in nut_conf
func (h *RecommendationHandler) RecommendCustom(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, true)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	req := models.DefaultRecipeRequest()
	if err := decodeBody(w, r, &req); err != nil {
		h.log.Warn("failed to decode custom recommendation request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	rec, err := h.service.RecommendCustom(r.Context(), req, filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, rec, h.log)
}

func (h *RecommendationHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		h.log.Info("rejected recommendation request", "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
	case errors.Is(err, service.ErrBusy):
		h.log.Warn("recommendation engine busy", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "Recommendation engine is busy, try again later", h.log)
	default:
		h.log.Error("failed to generate recommendation", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

// decodeBody decodes a JSON body into dst, leaving dst untouched for an empty body
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}
