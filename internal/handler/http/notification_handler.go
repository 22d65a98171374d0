package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/notification"
)

type CreateNotificationRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=info warning error success"`
}

type NotificationHandler struct {
	repo     notification.Repository
	validate *validator.Validate
}

func NewNotificationHandler(repo notification.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo, validate: validator.New()}
}

func (h *NotificationHandler) RegisterRoutes(router chi.Router) {
	router.Get("/notifications", h.handleList)
	router.Post("/notifications", h.handleCreate)
	router.Put("/notifications/{id}/read", h.handleMarkRead)
}

func (h *NotificationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch notifications")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	respondWithJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload CreateNotificationRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode notification payload")
		respondWithError(w, http.StatusBadRequest, "Invalid notification data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	stored, err := h.repo.Create(r.Context(), &notification.Notification{
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create notification")
		respondWithError(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}

	respondWithSuccess(w, "notification", stored)
}

func (h *NotificationHandler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	stored, err := h.repo.MarkRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Notification not found")
			return
		}
		log.Error().Err(err).Int64("notification_id", id).Msg("Failed to mark notification as read")
		respondWithError(w, http.StatusInternalServerError, "Failed to mark notification as read")
		return
	}

	respondWithSuccess(w, "notification", stored)
}
