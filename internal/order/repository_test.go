package order_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront-backend/internal/inventory"
	"github.com/vasiliy-maslov/storefront-backend/internal/order"
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

func createTestProduct(t *testing.T, pool *pgxpool.Pool, stock int) int64 {
	t.Helper()
	sku := "test-" + uuid.Must(uuid.NewV4()).String()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO products (name, description, category, price, stock_quantity, weight, sku)
		VALUES ('Test pellets', 'integration fixture', 'stock', 9.99, $1, '15kg', $2)
		RETURNING id`, stock, sku).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM inventory WHERE product_id = $1`, id)
		_, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	})
	return id
}

func cleanupOrder(t *testing.T, pool *pgxpool.Pool, orderID int64) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID)
		_, _ = pool.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, orderID)
	})
}

func TestRepository_PlaceOrder(t *testing.T) {
	pool := testPool(t)
	repo := order.NewRepository(pool)
	productID := createTestProduct(t, pool, 10)

	ctx := context.Background()

	placed, err := repo.PlaceOrder(ctx, &order.Order{
		CustomerName:    "Anna Petrova",
		CustomerEmail:   "anna@example.com",
		ShippingAddress: map[string]string{"city": "Berlin", "street": "Hauptstr. 5"},
		TotalAmount:     29.97,
		Items: []order.Item{
			{ProductID: productID, Quantity: 1, UnitPrice: 9.99, TotalPrice: 9.99},
			{ProductID: productID, Quantity: 2, UnitPrice: 9.99, TotalPrice: 19.98},
		},
	})
	require.NoError(t, err)
	cleanupOrder(t, pool, placed.ID)

	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, order.PaymentPending, placed.PaymentStatus)
	require.Len(t, placed.Items, 2)
	assert.Equal(t, placed.ID, placed.Items[0].OrderID)

	var stock int
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&stock))
	assert.Equal(t, 7, stock, "placement decrements stock by the total ordered quantity")

	movements, err := inventory.NewRepository(pool).List(ctx, &productID)
	require.NoError(t, err)
	require.Len(t, movements, 2, "one sale movement per line item")
	for _, m := range movements {
		assert.Equal(t, "out", m.MovementType)
		assert.Equal(t, "Order sale", m.Reason)
		require.NotNil(t, m.ReferenceID)
		assert.Equal(t, fmt.Sprintf("order-%d", placed.ID), *m.ReferenceID)
	}

	fetched, err := repo.GetByID(ctx, placed.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, 1, fetched.Items[0].Quantity)
	assert.Equal(t, 2, fetched.Items[1].Quantity)
}

func TestRepository_PlaceOrder_AllowsNegativeStock(t *testing.T) {
	pool := testPool(t)
	repo := order.NewRepository(pool)
	productID := createTestProduct(t, pool, 2)

	ctx := context.Background()

	placed, err := repo.PlaceOrder(ctx, &order.Order{
		CustomerName:    "Anna Petrova",
		CustomerEmail:   "anna@example.com",
		ShippingAddress: map[string]string{"city": "Berlin"},
		TotalAmount:     49.95,
		Items: []order.Item{
			{ProductID: productID, Quantity: 5, UnitPrice: 9.99, TotalPrice: 49.95},
		},
	})
	require.NoError(t, err)
	cleanupOrder(t, pool, placed.ID)

	var stock int
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&stock))
	assert.Equal(t, -3, stock, "ordering more than is on hand drives stock negative")
}

func TestRepository_PlaceOrder_UnknownProductRollsBack(t *testing.T) {
	pool := testPool(t)
	repo := order.NewRepository(pool)

	ctx := context.Background()

	// Reserve an id that is guaranteed not to exist.
	missingID := createTestProduct(t, pool, 0)
	_, err := pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, missingID)
	require.NoError(t, err)

	email := "rollback-" + uuid.Must(uuid.NewV4()).String() + "@example.com"
	_, err = repo.PlaceOrder(ctx, &order.Order{
		CustomerName:    "Anna Petrova",
		CustomerEmail:   email,
		ShippingAddress: map[string]string{"city": "Berlin"},
		TotalAmount:     9.99,
		Items: []order.Item{
			{ProductID: missingID, Quantity: 1, UnitPrice: 9.99, TotalPrice: 9.99},
		},
	})
	require.ErrorIs(t, err, order.ErrProductNotFound)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE customer_email = $1`, email).Scan(&count))
	assert.Zero(t, count, "a failed placement must not leave a partial order behind")
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	pool := testPool(t)
	repo := order.NewRepository(pool)

	_, err := repo.UpdateStatus(context.Background(), -1, order.StatusShipped)
	assert.ErrorIs(t, err, order.ErrNotFound)
}
