package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/setting"
)

type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

type SettingHandler struct {
	repo     setting.Repository
	validate *validator.Validate
}

func NewSettingHandler(repo setting.Repository) *SettingHandler {
	return &SettingHandler{repo: repo, validate: validator.New()}
}

func (h *SettingHandler) RegisterRoutes(router chi.Router) {
	router.Get("/settings", h.handleList)
	router.Get("/settings/{key}", h.handleGet)
	router.Put("/settings/{key}", h.handleUpsert)
}

func (h *SettingHandler) handleList(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch settings")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	respondWithJSON(w, http.StatusOK, settings)
}

func (h *SettingHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s, err := h.repo.GetByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, setting.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Setting not found")
			return
		}
		log.Error().Err(err).Str("key", key).Msg("Failed to fetch setting")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch setting")
		return
	}

	respondWithJSON(w, http.StatusOK, s)
}

func (h *SettingHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var payload UpdateSettingRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode setting payload")
		respondWithError(w, http.StatusBadRequest, "Invalid setting data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	s, err := h.repo.Upsert(r.Context(), key, payload.Value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to update setting")
		respondWithError(w, http.StatusInternalServerError, "Failed to update setting")
		return
	}

	respondWithSuccess(w, "setting", s)
}
