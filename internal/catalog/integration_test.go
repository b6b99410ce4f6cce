package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres brings up a disposable database, applies the migrations
// and returns a connected pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("storevoice_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminating container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Close())

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	rows := []struct {
		name, sku, brand, category, specs string
		price                             float64
		stock                             int32
	}{
		{"NVIDIA GeForce RTX 4090 24GB", "GPU-4090", "NVIDIA", "graphics cards", "24GB GDDR6X", 1699.99, 3},
		{"NVIDIA GeForce RTX 4080 Super", "GPU-4080S", "NVIDIA", "graphics cards", "16GB GDDR6X", 1099.00, 0},
		{"Samsung 990 PRO 2TB", "SSD-990P-2T", "Samsung", "SSD drives", "NVMe PCIe 4.0", 189.99, 12},
		{"Kingston Fury Beast 32GB", "RAM-KF32", "Kingston", "memory", "DDR5-6000", 119.90, 25},
	}
	for _, r := range rows {
		_, err := pool.Exec(ctx, `INSERT INTO products (name, sku, brand, category, price, stock_quantity, specifications)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.name, r.sku, r.brand, r.category, r.price, r.stock, r.specs)
		require.NoError(t, err)
	}
}

func TestPG_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	pool := startPostgres(t)
	seedProducts(t, pool)
	q := NewPG(pool)
	ctx := context.Background()

	t.Run("SearchByTerm matches name brand and sku", func(t *testing.T) {
		records, err := q.SearchByTerm(ctx, "nvidia", 10, "")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "NVIDIA GeForce RTX 4090 24GB", records[0].Name,
			"most stocked first")
	})

	t.Run("SearchByTerm with category filter", func(t *testing.T) {
		records, err := q.SearchByTerm(ctx, "nvidia", 10, "graphics")
		require.NoError(t, err)
		assert.Len(t, records, 2)

		records, err = q.SearchByTerm(ctx, "nvidia", 10, "memory")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("SearchByTerm respects limit", func(t *testing.T) {
		records, err := q.SearchByTerm(ctx, "nvidia", 1, "")
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("GetBySkuOrName exact sku", func(t *testing.T) {
		record, err := q.GetBySkuOrName(ctx, "SSD-990P-2T")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "Samsung 990 PRO 2TB", record.Name)
		assert.InDelta(t, 189.99, record.Price, 0.001)
	})

	t.Run("GetBySkuOrName case-insensitive name", func(t *testing.T) {
		record, err := q.GetBySkuOrName(ctx, "samsung 990 pro 2tb")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "SSD-990P-2T", record.SKU)
	})

	t.Run("GetBySkuOrName absent is nil not error", func(t *testing.T) {
		record, err := q.GetBySkuOrName(ctx, "no-such-thing")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("PopularInStock excludes exhausted products", func(t *testing.T) {
		records, err := q.PopularInStock(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Kingston Fury Beast 32GB", records[0].Name)
		for _, r := range records {
			assert.Positive(t, r.StockQuantity)
		}
	})

	t.Run("duplicate sku rejected", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO products (name, sku, price, stock_quantity)
			VALUES ('dup', 'GPU-4090', 1, 1)`)
		require.Error(t, err)
	})
}
