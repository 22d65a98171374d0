package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/inventory"
)

type InventoryHandler struct {
	repo inventory.Repository
}

func NewInventoryHandler(repo inventory.Repository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

func (h *InventoryHandler) RegisterRoutes(router chi.Router) {
	router.Get("/inventory", h.handleList)
}

func (h *InventoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	productID, err := optionalInt64Query(r, "productId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid productId parameter")
		return
	}

	movements, err := h.repo.List(r.Context(), productID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch inventory movements")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch inventory movements")
		return
	}

	respondWithJSON(w, http.StatusOK, movements)
}
