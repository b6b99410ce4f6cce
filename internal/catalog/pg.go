package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG implements Querier against PostgreSQL via pgxpool.
type PG struct {
	pool *pgxpool.Pool
}

// NewPG creates a PostgreSQL-backed querier.
func NewPG(pool *pgxpool.Pool) *PG {
	return &PG{pool: pool}
}

const recordColumns = `id, name, coalesce(sku, ''), coalesce(brand, ''), coalesce(category, ''), price, stock_quantity, coalesce(specifications, '')`

// SearchByTerm performs fuzzy matching on name, brand, category and SKU,
// most-stocked first so in-stock products surface before exhausted ones.
func (q *PG) SearchByTerm(ctx context.Context, term string, limit int32, category string) ([]Record, error) {
	query := `SELECT ` + recordColumns + `
		FROM products
		WHERE (name ILIKE '%' || $1 || '%'
			OR brand ILIKE '%' || $1 || '%'
			OR category ILIKE '%' || $1 || '%'
			OR sku ILIKE '%' || $1 || '%')`
	args := []any{term}
	if category != "" {
		query += ` AND category ILIKE '%' || $3 || '%'`
		args = append(args, limit, category)
		query += ` ORDER BY stock_quantity DESC LIMIT $2`
	} else {
		query += ` ORDER BY stock_quantity DESC LIMIT $2`
		args = append(args, limit)
	}

	rows, err := q.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// GetBySkuOrName returns the single record with an exact SKU or
// case-insensitive name match, or nil when absent.
func (q *PG) GetBySkuOrName(ctx context.Context, identifier string) (*Record, error) {
	row := q.pool.QueryRow(ctx, `SELECT `+recordColumns+`
		FROM products
		WHERE sku = $1 OR lower(name) = lower($1)
		LIMIT 1`, identifier)

	var r Record
	err := row.Scan(&r.ID, &r.Name, &r.SKU, &r.Brand, &r.Category, &r.Price, &r.StockQuantity, &r.Specifications)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	return &r, nil
}

// PopularInStock returns the most stocked available products, used as the
// last-resort suggestion source.
func (q *PG) PopularInStock(ctx context.Context, limit int32) ([]Record, error) {
	rows, err := q.pool.Query(ctx, `SELECT `+recordColumns+`
		FROM products
		WHERE stock_quantity > 0
		ORDER BY stock_quantity DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular products: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.SKU, &r.Brand, &r.Category, &r.Price, &r.StockQuantity, &r.Specifications); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return records, nil
}
