package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/levi3112/Dishes-Recommendation-API/internal/repository"
	"github.com/levi3112/Dishes-Recommendation-API/internal/service"
)

// DishHandler handles catalog HTTP requests
type DishHandler struct {
	service *service.DishService
	logger  *slog.Logger
}

// NewDishHandler creates a new dish handler
func NewDishHandler(service *service.DishService, logger *slog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger,
	}
}

// ListDishes handles GET /api/dish
// Accepts the same season, meal_type and quick_recipe filters as the recommend routes,
// but applies none unless they are given
func (h *DishHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, false)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	dishes, err := h.service.ListDishes(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list dishes", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, dishes, h.logger)
}

// GetDish handles GET /api/dish/{dishId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Dish not found
func (h *DishHandler) GetDish(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "dishId")

	dish, err := h.service.GetDish(r.Context(), dishID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDishID):
			h.logger.Warn("invalid dish ID format", "dishId", dishID)
			WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		case errors.Is(err, repository.ErrDishNotFound):
			h.logger.Info("dish not found", "dishId", dishID)
			WriteError(w, http.StatusNotFound, "Dish not found", h.logger)
		default:
			h.logger.Error("failed to get dish", "dishId", dishID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusOK, dish, h.logger)
}
