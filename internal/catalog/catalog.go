// Package catalog provides the persistent product catalog client, the
// final backstop tier of the resolution chain. Unlike the live tiers its
// errors are never swallowed: if the catalog fails, the whole operation
// has no data to offer and the failure must surface.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/koopa0/storevoice/internal/product"
)

// Record is a product row as stored in the catalog database.
type Record struct {
	ID             int64
	Name           string
	SKU            string
	Brand          string
	Category       string
	Price          float64
	StockQuantity  int32
	Specifications string
}

// Product converts a catalog record to the normalized product shape.
// Exact-match relevance is assigned by the caller; records carry the
// store's own ranking order otherwise.
func (r Record) Product() product.Product {
	return product.Product{
		Name:        r.Name,
		SKU:         r.SKU,
		Description: r.Specifications,
		Price:       product.Float(r.Price),
		InStock:     product.Bool(r.StockQuantity > 0),
		Source:      product.SourceCatalog,
		Relevance:   storeRankRelevance,
	}
}

const (
	// exactMatchRelevance ranks exact SKU or name matches above everything.
	exactMatchRelevance = 1.0

	// storeRankRelevance is shared by all non-exact catalog records so a
	// stable sort preserves the store's own text-search ordering.
	storeRankRelevance = 0.8
)

// Querier defines the database operations the store needs. Following Go
// convention the interface is defined by the consumer, which lets tests
// substitute a mock without a running database.
type Querier interface {
	SearchByTerm(ctx context.Context, term string, limit int32, category string) ([]Record, error)
	GetBySkuOrName(ctx context.Context, identifier string) (*Record, error)
	PopularInStock(ctx context.Context, limit int32) ([]Record, error)
}

// Store is the catalog client used by operations and the resolution chain.
// It is safe for concurrent use.
type Store struct {
	querier Querier
	logger  *slog.Logger
}

// New creates a catalog store. A nil logger uses the default.
func New(querier Querier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{querier: querier, logger: logger}
}

// SearchByTerm returns catalog records matching the normalized term.
// Errors propagate: this is the backstop tier.
func (s *Store) SearchByTerm(ctx context.Context, term string, limit int32, category string) ([]Record, error) {
	records, err := s.querier.SearchByTerm(ctx, NormalizeTerm(term), limit, category)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	return records, nil
}

// GetBySkuOrName returns the record matching an exact SKU or name, or nil
// when no such product exists.
func (s *Store) GetBySkuOrName(ctx context.Context, identifier string) (*Record, error) {
	record, err := s.querier.GetBySkuOrName(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}
	return record, nil
}

// SearchProducts adapts SearchByTerm to the normalized product shape used
// by the resolution chain. Exact name or SKU matches are promoted to full
// relevance; the rest keep the store's ordering.
func (s *Store) SearchProducts(ctx context.Context, term string, limit int, category string) ([]product.Product, error) {
	records, err := s.SearchByTerm(ctx, term, int32(limit), category)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeTerm(term)
	products := make([]product.Product, 0, len(records))
	for _, record := range records {
		p := record.Product()
		if strings.EqualFold(record.SKU, term) || NormalizeTerm(record.Name) == normalized {
			p.Relevance = exactMatchRelevance
		}
		products = append(products, p)
	}
	return products, nil
}

// Suggestions returns alternative products for a failed or out-of-stock
// lookup: similar products first, then the most stocked products as a
// fallback. Best-effort: errors are logged and an empty list returned,
// because suggestions decorate an answer rather than constitute one.
func (s *Store) Suggestions(ctx context.Context, term string, limit int32) []Record {
	records, err := s.querier.SearchByTerm(ctx, NormalizeTerm(term), limit+5, "")
	if err != nil {
		s.logger.Warn("suggestion search failed", "term", term, "error", err)
		return nil
	}
	if len(records) == 0 {
		records, err = s.querier.PopularInStock(ctx, limit)
		if err != nil {
			s.logger.Warn("popular product lookup failed", "error", err)
			return nil
		}
	}
	if int32(len(records)) > limit {
		records = records[:limit]
	}
	return records
}

// nonWordRe matches everything that is not a word character or space.
// \w covers Greek letters under Go's Unicode-aware regexp.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeTerm canonicalizes a search term: lowercase, punctuation
// stripped, whitespace collapsed.
func NormalizeTerm(term string) string {
	t := strings.ToLower(term)
	t = nonWordRe.ReplaceAllString(t, " ")
	t = spaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
