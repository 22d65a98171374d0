package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront-backend/internal/product"
)

type mockProductService struct {
	listFunc    func(ctx context.Context) ([]product.Product, error)
	getByIDFunc func(ctx context.Context, id int64) (*product.Product, error)
	createFunc  func(ctx context.Context, p *product.Product) (*product.Product, error)
	updateFunc  func(ctx context.Context, id int64, patch product.Patch) (*product.Product, error)
	deleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockProductService) List(ctx context.Context) ([]product.Product, error) {
	return m.listFunc(ctx)
}

func (m *mockProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProductService) Create(ctx context.Context, p *product.Product) (*product.Product, error) {
	return m.createFunc(ctx, p)
}

func (m *mockProductService) Update(ctx context.Context, id int64, patch product.Patch) (*product.Product, error) {
	return m.updateFunc(ctx, id, patch)
}

func (m *mockProductService) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

func newProductRouter(svc product.Service) *chi.Mux {
	r := chi.NewRouter()
	NewProductHandler(svc).RegisterRoutes(r)
	return r
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	svc := &mockProductService{
		getByIDFunc: func(ctx context.Context, id int64) (*product.Product, error) {
			return nil, product.ErrNotFound
		},
	}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, w.Body.String())
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	svc := &mockProductService{}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid id parameter"}`, w.Body.String())
}

func TestProductHandler_Create_ValidationFailure(t *testing.T) {
	svc := &mockProductService{
		createFunc: func(ctx context.Context, p *product.Product) (*product.Product, error) {
			t.Fatal("service must not be called for invalid payloads")
			return nil, nil
		},
	}
	r := newProductRouter(svc)

	body := `{"name":"Pellets","price":-2}`
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Details, "Description")
	assert.Contains(t, resp.Details, "Price")
	assert.Contains(t, resp.Details, "SKU")
}

func TestProductHandler_Create_Success(t *testing.T) {
	svc := &mockProductService{
		createFunc: func(ctx context.Context, p *product.Product) (*product.Product, error) {
			stored := *p
			stored.ID = 5
			return &stored, nil
		},
	}
	r := newProductRouter(svc)

	body := `{
		"name": "Wood pellets",
		"description": "Premium 6mm pellets",
		"category": "stock",
		"price": 5.49,
		"stock_quantity": 200,
		"weight": "15kg",
		"sku": "WP-15"
	}`
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Product product.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(5), resp.Product.ID)
	assert.True(t, resp.Product.IsActive, "is_active defaults to true")
}

func TestProductHandler_Update_UnknownField(t *testing.T) {
	svc := &mockProductService{
		updateFunc: func(ctx context.Context, id int64, patch product.Patch) (*product.Product, error) {
			t.Fatal("service must not be called for invalid payloads")
			return nil, nil
		},
	}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/products/3", bytes.NewBufferString(`{"id":99}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List_Success(t *testing.T) {
	svc := &mockProductService{
		listFunc: func(ctx context.Context) ([]product.Product, error) {
			return []product.Product{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}, nil
		},
	}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var products []product.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ID)
}
