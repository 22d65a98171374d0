package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/product"
)

type CreateProductRequest struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	Category       string            `json:"category" validate:"required"`
	Price          float64           `json:"price" validate:"gte=0"`
	StockQuantity  int               `json:"stock_quantity" validate:"gte=0"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	IsActive       *bool             `json:"is_active"`
	Weight         string            `json:"weight" validate:"required"`
	SKU            string            `json:"sku" validate:"required"`
}

type ProductHandler struct {
	svc      product.Service
	validate *validator.Validate
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc, validate: validator.New()}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleList)
	router.Get("/products/{id}", h.handleGet)
	router.Post("/products", h.handleCreate)
	router.Put("/products/{id}", h.handleUpdate)
	router.Delete("/products/{id}", h.handleDelete)
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload CreateProductRequest
	if err := decodeJSON(r, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode product payload")
		respondWithError(w, http.StatusBadRequest, "Invalid product data")
		return
	}
	if !validatePayload(w, h.validate, payload) {
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	p := product.Product{
		Name:           payload.Name,
		Description:    payload.Description,
		Category:       payload.Category,
		Price:          payload.Price,
		StockQuantity:  payload.StockQuantity,
		Images:         payload.Images,
		Specifications: payload.Specifications,
		IsActive:       isActive,
		Weight:         payload.Weight,
		SKU:            payload.SKU,
	}

	created, err := h.svc.Create(r.Context(), &p)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	respondWithSuccess(w, "product", created)
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var patch product.Patch
	if err := decodeJSON(r, &patch); err != nil {
		log.Warn().Err(err).Msg("Failed to decode product patch")
		respondWithError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	respondWithSuccess(w, "product", updated)
}

func (h *ProductHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondWithSuccess(w, "", nil)
}
