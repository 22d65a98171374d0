package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/contact"
)

type SubmitContactRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject" validate:"required"`
	Message string  `json:"message" validate:"required"`
}

type CreateMessageRequest struct {
	ContactID *int64 `json:"contact_id"`
	FromAdmin bool   `json:"from_admin"`
	Message   string `json:"message" validate:"required"`
}

type ContactHandler struct {
	svc      contact.Service
	validate *validator.Validate
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc, validate: validator.New()}
}

func (h *ContactHandler) RegisterRoutes(router chi.Router) {
	router.Post("/contact", h.handleSubmit)
	router.Get("/contacts", h.handleList)
	router.Get("/contacts/{id}/messages", h.handleGetWithMessages)
	router.Get("/messages", h.handleListMessages)
	router.Post("/messages", h.handleCreateMessage)
	router.Put("/messages/{id}/read", h.handleMarkMessageRead)
}

func (h *ContactHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload SubmitContactRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode contact payload")
		respondWithError(w, http.StatusBadRequest, "Invalid contact data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	c := contact.Contact{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Subject: payload.Subject,
		Message: payload.Message,
	}

	stored, err := h.svc.Submit(r.Context(), &c)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to submit contact form")
		return
	}

	respondWithSuccess(w, "contact", stored)
}

func (h *ContactHandler) handleList(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}

	respondWithJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) handleGetWithMessages(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	result, err := h.svc.GetWithMessages(r.Context(), id)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Contact not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch contact messages")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *ContactHandler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	contactID, err := optionalInt64Query(r, "contactId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contactId parameter")
		return
	}

	messages, err := h.svc.ListMessages(r.Context(), contactID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	respondWithJSON(w, http.StatusOK, messages)
}

func (h *ContactHandler) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var payload CreateMessageRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode message payload")
		respondWithError(w, http.StatusBadRequest, "Invalid message data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	m := contact.Message{
		ContactID: payload.ContactID,
		FromAdmin: payload.FromAdmin,
		Message:   payload.Message,
	}

	stored, err := h.svc.CreateMessage(r.Context(), &m)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create message")
		return
	}

	respondWithSuccess(w, "message", stored)
}

func (h *ContactHandler) handleMarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	stored, err := h.svc.MarkMessageRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, contact.ErrMessageNotFound) {
			respondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to mark message as read")
		return
	}

	respondWithSuccess(w, "message", stored)
}
