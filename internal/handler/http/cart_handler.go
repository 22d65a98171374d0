package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/cart"
)

type AddToCartRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	ProductID int64  `json:"product_id" validate:"gt=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type CartHandler struct {
	repo     cart.Repository
	validate *validator.Validate
}

func NewCartHandler(repo cart.Repository) *CartHandler {
	return &CartHandler{repo: repo, validate: validator.New()}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart/{sessionId}", h.handleList)
	router.Post("/cart", h.handleAdd)
	router.Put("/cart/{id}", h.handleUpdate)
	router.Delete("/cart/{id}", h.handleRemove)
	router.Delete("/cart/session/{sessionId}", h.handleClear)
}

func (h *CartHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListBySession(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch cart items")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch cart items")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *CartHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload AddToCartRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode cart payload")
		respondWithError(w, http.StatusBadRequest, "Invalid cart data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	item, err := h.repo.Add(r.Context(), &cart.Item{
		SessionID: payload.SessionID,
		ProductID: payload.ProductID,
		Quantity:  payload.Quantity,
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", payload.SessionID).Msg("Failed to add cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	respondWithSuccess(w, "cart_item", item)
}

func (h *CartHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var payload UpdateCartItemRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode cart payload")
		respondWithError(w, http.StatusBadRequest, "Invalid cart data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	item, err := h.repo.UpdateQuantity(r.Context(), id, payload.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Cart item not found")
			return
		}
		log.Error().Err(err).Int64("cart_id", id).Msg("Failed to update cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	respondWithSuccess(w, "cart_item", item)
}

func (h *CartHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.repo.Remove(r.Context(), id); err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Cart item not found")
			return
		}
		log.Error().Err(err).Int64("cart_id", id).Msg("Failed to remove cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	respondWithSuccess(w, "", nil)
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	if err := h.repo.Clear(r.Context(), sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear cart")
		respondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	respondWithSuccess(w, "", nil)
}
