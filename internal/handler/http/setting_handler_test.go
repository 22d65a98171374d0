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

	"github.com/vasiliy-maslov/storefront-backend/internal/setting"
)

type mockSettingRepository struct {
	listFunc     func(ctx context.Context) ([]setting.Setting, error)
	getByKeyFunc func(ctx context.Context, key string) (*setting.Setting, error)
	upsertFunc   func(ctx context.Context, key, value string) (*setting.Setting, error)
}

func (m *mockSettingRepository) List(ctx context.Context) ([]setting.Setting, error) {
	return m.listFunc(ctx)
}

func (m *mockSettingRepository) GetByKey(ctx context.Context, key string) (*setting.Setting, error) {
	return m.getByKeyFunc(ctx, key)
}

func (m *mockSettingRepository) Upsert(ctx context.Context, key, value string) (*setting.Setting, error) {
	return m.upsertFunc(ctx, key, value)
}

func newSettingRouter(repo setting.Repository) *chi.Mux {
	r := chi.NewRouter()
	NewSettingHandler(repo).RegisterRoutes(r)
	return r
}

func TestSettingHandler_Get_NotFound(t *testing.T) {
	repo := &mockSettingRepository{
		getByKeyFunc: func(ctx context.Context, key string) (*setting.Setting, error) {
			return nil, setting.ErrNotFound
		},
	}
	r := newSettingRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/settings/store_name", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Setting not found"}`, w.Body.String())
}

func TestSettingHandler_Upsert_Success(t *testing.T) {
	var gotKey, gotValue string
	repo := &mockSettingRepository{
		upsertFunc: func(ctx context.Context, key, value string) (*setting.Setting, error) {
			gotKey, gotValue = key, value
			return &setting.Setting{ID: 3, Key: key, Value: value}, nil
		},
	}
	r := newSettingRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/settings/store_name", bytes.NewBufferString(`{"value":"Pellet Depot"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "store_name", gotKey)
	assert.Equal(t, "Pellet Depot", gotValue)

	var resp struct {
		Success bool            `json:"success"`
		Setting setting.Setting `json:"setting"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Pellet Depot", resp.Setting.Value)
}

func TestSettingHandler_Upsert_MissingValue(t *testing.T) {
	repo := &mockSettingRepository{
		upsertFunc: func(ctx context.Context, key, value string) (*setting.Setting, error) {
			t.Fatal("repository must not be called for invalid payloads")
			return nil, nil
		},
	}
	r := newSettingRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/settings/store_name", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingHandler_List_Success(t *testing.T) {
	repo := &mockSettingRepository{
		listFunc: func(ctx context.Context) ([]setting.Setting, error) {
			return []setting.Setting{
				{ID: 1, Key: "currency", Value: "EUR"},
				{ID: 2, Key: "store_name", Value: "Pellet Depot"},
			}, nil
		},
	}
	r := newSettingRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var settings []setting.Setting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	require.Len(t, settings, 2)
	assert.Equal(t, "currency", settings[0].Key)
}
