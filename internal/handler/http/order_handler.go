package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/order"
)

type OrderItemRequest struct {
	ProductID  int64   `json:"product_id" validate:"gt=0"`
	Quantity   int     `json:"quantity" validate:"gt=0"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
}

type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name" validate:"required"`
	CustomerEmail   string             `json:"customer_email" validate:"required,email"`
	CustomerPhone   *string            `json:"customer_phone"`
	ShippingAddress map[string]string  `json:"shipping_address" validate:"required"`
	TotalAmount     float64            `json:"total_amount" validate:"gte=0"`
	PaymentMethod   *string            `json:"payment_method"`
	Notes           *string            `json:"notes"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderHandler struct {
	svc      order.Service
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc, validate: validator.New()}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders", h.handleList)
	router.Get("/orders/{id}", h.handleGet)
	router.Post("/orders", h.handleCreate)
	router.Put("/orders/{id}/status", h.handleUpdateStatus)
}

func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	o, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload CreateOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode order payload")
		respondWithError(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	o := order.Order{
		CustomerName:    payload.CustomerName,
		CustomerEmail:   payload.CustomerEmail,
		CustomerPhone:   payload.CustomerPhone,
		ShippingAddress: payload.ShippingAddress,
		TotalAmount:     payload.TotalAmount,
		PaymentMethod:   payload.PaymentMethod,
		Notes:           payload.Notes,
		Items:           make([]order.Item, 0, len(payload.Items)),
	}
	for _, item := range payload.Items {
		o.Items = append(o.Items, order.Item{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	placed, err := h.svc.PlaceOrder(r.Context(), &o)
	if err != nil {
		if errors.Is(err, order.ErrProductNotFound) {
			respondWithError(w, http.StatusBadRequest, "Order references an unknown product")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	// The creation response carries the order without its items, as listings
	// do; items are served by the single-order endpoint.
	placed.Items = nil

	respondWithSuccess(w, "order", placed)
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var payload UpdateOrderStatusRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode order status payload")
		respondWithError(w, http.StatusBadRequest, "Invalid status data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), id, order.Status(payload.Status))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, "Invalid order status")
		case errors.Is(err, order.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Order not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	respondWithSuccess(w, "order", updated)
}
