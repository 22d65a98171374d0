package setting_test

import (
	"context"
	"os"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront-backend/internal/setting"
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

func TestRepository_Upsert(t *testing.T) {
	pool := testPool(t)
	repo := setting.NewRepository(pool)
	key := "test_" + uuid.Must(uuid.NewV4()).String()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM settings WHERE key = $1`, key)
	})

	ctx := context.Background()

	first, err := repo.Upsert(ctx, key, "first value")
	require.NoError(t, err)
	assert.Equal(t, "first value", first.Value)

	second, err := repo.Upsert(ctx, key, "second value")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upserting an existing key updates it in place")
	assert.Equal(t, "second value", second.Value)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM settings WHERE key = $1`, key).Scan(&count))
	assert.Equal(t, 1, count)

	fetched, err := repo.GetByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "second value", fetched.Value)
}

func TestRepository_GetByKey_NotFound(t *testing.T) {
	pool := testPool(t)
	repo := setting.NewRepository(pool)

	_, err := repo.GetByKey(context.Background(), "missing_"+uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, setting.ErrNotFound)
}
