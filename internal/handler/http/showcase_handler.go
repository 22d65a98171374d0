package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/showcase"
)

type CreateShowcaseImageRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	ImageURL    string  `json:"image_url" validate:"required,url"`
	Rank        int     `json:"order" validate:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

type ShowcaseHandler struct {
	repo     showcase.Repository
	validate *validator.Validate
}

func NewShowcaseHandler(repo showcase.Repository) *ShowcaseHandler {
	return &ShowcaseHandler{repo: repo, validate: validator.New()}
}

func (h *ShowcaseHandler) RegisterRoutes(router chi.Router) {
	router.Get("/showcase-images", h.handleList)
	router.Get("/showcase-images/{id}", h.handleGet)
	router.Post("/showcase-images", h.handleCreate)
	router.Put("/showcase-images/{id}", h.handleUpdate)
	router.Delete("/showcase-images/{id}", h.handleDelete)
}

func (h *ShowcaseHandler) handleList(w http.ResponseWriter, r *http.Request) {
	images, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch showcase images")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch showcase images")
		return
	}

	respondWithJSON(w, http.StatusOK, images)
}

func (h *ShowcaseHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	img, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, showcase.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Showcase image not found")
			return
		}
		log.Error().Err(err).Int64("image_id", id).Msg("Failed to fetch showcase image")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch showcase image")
		return
	}

	respondWithJSON(w, http.StatusOK, img)
}

func (h *ShowcaseHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload CreateShowcaseImageRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode showcase image payload")
		respondWithError(w, http.StatusBadRequest, "Invalid image data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	stored, err := h.repo.Create(r.Context(), &showcase.Image{
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Rank:        payload.Rank,
		IsActive:    isActive,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create showcase image")
		respondWithError(w, http.StatusInternalServerError, "Failed to create showcase image")
		return
	}

	respondWithSuccess(w, "image", stored)
}

func (h *ShowcaseHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var patch showcase.Patch
	if err := decodeJSON(r, &patch); err != nil {
		log.Warn().Err(err).Msg("Failed to decode showcase image patch")
		respondWithError(w, http.StatusBadRequest, "Invalid image data")
		return
	}

	stored, err := h.repo.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, showcase.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Showcase image not found")
			return
		}
		log.Error().Err(err).Int64("image_id", id).Msg("Failed to update showcase image")
		respondWithError(w, http.StatusInternalServerError, "Failed to update showcase image")
		return
	}

	respondWithSuccess(w, "image", stored)
}

func (h *ShowcaseHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, showcase.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Showcase image not found")
			return
		}
		log.Error().Err(err).Int64("image_id", id).Msg("Failed to delete showcase image")
		respondWithError(w, http.StatusInternalServerError, "Failed to delete showcase image")
		return
	}

	respondWithSuccess(w, "", nil)
}
