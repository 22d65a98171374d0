package product_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront-backend/internal/inventory"
	"github.com/vasiliy-maslov/storefront-backend/internal/product"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createProduct(t *testing.T, pool *pgxpool.Pool, repo product.Repository, stock int) *product.Product {
	t.Helper()

	created, err := repo.Create(context.Background(), &product.Product{
		Name:          "Test pellets",
		Description:   "integration fixture",
		Category:      "stock",
		Price:         9.99,
		StockQuantity: stock,
		IsActive:      true,
		Weight:        "15kg",
		SKU:           "test-" + uuid.Must(uuid.NewV4()).String(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM inventory WHERE product_id = $1`, created.ID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, created.ID)
	})
	return created
}

func TestRepository_Create_RecordsInitialStock(t *testing.T) {
	pool := testPool(t)
	repo := product.NewRepository(pool)

	created := createProduct(t, pool, repo, 10)
	assert.Equal(t, 10, created.StockQuantity)

	movements, err := inventory.NewRepository(pool).List(context.Background(), &created.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "in", movements[0].MovementType)
	assert.Equal(t, 10, movements[0].Quantity)
	assert.Equal(t, "Initial stock", movements[0].Reason)
	require.NotNil(t, movements[0].ReferenceID)
	assert.Equal(t, fmt.Sprintf("initial-%d", created.ID), *movements[0].ReferenceID)
}

func TestRepository_Update_StockAdjustment(t *testing.T) {
	pool := testPool(t)
	repo := product.NewRepository(pool)
	invRepo := inventory.NewRepository(pool)

	created := createProduct(t, pool, repo, 10)
	ctx := context.Background()

	newStock := 15
	updated, err := repo.Update(ctx, created.ID, product.Patch{StockQuantity: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.StockQuantity)

	movements, err := invRepo.List(ctx, &created.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2, "a stock change appends one adjustment movement")
	assert.Equal(t, "in", movements[0].MovementType)
	assert.Equal(t, 5, movements[0].Quantity)
	assert.Equal(t, "Manual adjustment", movements[0].Reason)
	require.NotNil(t, movements[0].ReferenceID)
	assert.True(t, strings.HasPrefix(*movements[0].ReferenceID, "adjustment-"))

	name := "Renamed pellets"
	_, err = repo.Update(ctx, created.ID, product.Patch{Name: &name})
	require.NoError(t, err)

	movements, err = invRepo.List(ctx, &created.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 2, "a patch without a stock change leaves the ledger alone")

	sameStock := 15
	_, err = repo.Update(ctx, created.ID, product.Patch{StockQuantity: &sameStock})
	require.NoError(t, err)

	movements, err = invRepo.List(ctx, &created.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 2, "restating the current stock records nothing")
}

func TestRepository_Update_NotFound(t *testing.T) {
	pool := testPool(t)
	repo := product.NewRepository(pool)

	name := "ghost"
	_, err := repo.Update(context.Background(), -1, product.Patch{Name: &name})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	pool := testPool(t)
	repo := product.NewRepository(pool)

	err := repo.Delete(context.Background(), -1)
	assert.ErrorIs(t, err, product.ErrNotFound)
}
