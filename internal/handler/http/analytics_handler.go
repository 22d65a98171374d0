package http

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/analytics"
)

type TrackVisitorRequest struct {
	SessionID    string   `json:"session_id"`
	Country      *string  `json:"country"`
	City         *string  `json:"city"`
	Device       *string  `json:"device"`
	Browser      *string  `json:"browser"`
	OS           *string  `json:"os"`
	VisitedPages []string `json:"visited_pages"`
	TimeOnSite   *int     `json:"time_on_site"`
	IsReturning  bool     `json:"is_returning"`
}

type TrackPageViewRequest struct {
	VisitorID *int64  `json:"visitor_id"`
	Page      string  `json:"page" validate:"required"`
	Title     *string `json:"title"`
	TimeSpent *int    `json:"time_spent"`
}

type AnalyticsHandler struct {
	svc      analytics.Service
	validate *validator.Validate
}

func NewAnalyticsHandler(svc analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, validate: validator.New()}
}

func (h *AnalyticsHandler) RegisterRoutes(router chi.Router) {
	router.Post("/visitors", h.handleTrackVisitor)
	router.Get("/visitors", h.handleListVisitors)
	router.Post("/page-views", h.handleTrackPageView)
	router.Get("/analytics-data", h.handleOverview)
}

func (h *AnalyticsHandler) handleTrackVisitor(w http.ResponseWriter, r *http.Request) {
	var payload TrackVisitorRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode visitor payload")
		respondWithError(w, http.StatusBadRequest, "Invalid visitor data")
		return
	}

	v := analytics.Visitor{
		SessionID:    payload.SessionID,
		IPAddress:    clientIP(r),
		UserAgent:    headerValue(r, "User-Agent"),
		Referrer:     headerValue(r, "Referer"),
		Country:      payload.Country,
		City:         payload.City,
		Device:       payload.Device,
		Browser:      payload.Browser,
		OS:           payload.OS,
		VisitedPages: payload.VisitedPages,
		TimeOnSite:   payload.TimeOnSite,
		IsReturning:  payload.IsReturning,
	}

	stored, err := h.svc.TrackVisitor(r.Context(), &v)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create visitor record")
		return
	}

	respondWithSuccess(w, "visitor", stored)
}

func (h *AnalyticsHandler) handleListVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.svc.ListVisitors(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch visitors")
		return
	}

	respondWithJSON(w, http.StatusOK, visitors)
}

func (h *AnalyticsHandler) handleTrackPageView(w http.ResponseWriter, r *http.Request) {
	var payload TrackPageViewRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode page view payload")
		respondWithError(w, http.StatusBadRequest, "Invalid page view data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	pv := analytics.PageView{
		VisitorID: payload.VisitorID,
		Page:      payload.Page,
		Title:     payload.Title,
		TimeSpent: payload.TimeSpent,
	}

	stored, err := h.svc.TrackPageView(r.Context(), &pv)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create page view record")
		return
	}

	respondWithSuccess(w, "page_view", stored)
}

func (h *AnalyticsHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch analytics data")
		return
	}

	respondWithJSON(w, http.StatusOK, overview)
}

func headerValue(r *http.Request, name string) *string {
	value := r.Header.Get(name)
	if value == "" {
		return nil
	}
	return &value
}

func clientIP(r *http.Request) *string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return nil
	}
	return &host
}
