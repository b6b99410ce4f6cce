package functions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/storevoice/internal/catalog"
	"github.com/koopa0/storevoice/internal/livedata"
	"github.com/koopa0/storevoice/internal/log"
	"github.com/koopa0/storevoice/internal/registry"
	"github.com/koopa0/storevoice/internal/resolve"
	"github.com/koopa0/storevoice/internal/scrape"
)

type fakeLive struct {
	searchResults []livedata.SearchResult
	searchErr     error
	fetchContent  string
	fetchErr      error
	fetchedURL    string
}

func (f *fakeLive) Search(context.Context, string, livedata.SearchOptions) ([]livedata.SearchResult, error) {
	return f.searchResults, f.searchErr
}

func (f *fakeLive) Fetch(_ context.Context, url string, _ livedata.FetchHints) (string, error) {
	f.fetchedURL = url
	return f.fetchContent, f.fetchErr
}

func chainDeps(q catalog.Querier, live livedata.Capability) Deps {
	store := catalog.New(q, log.NewNop())
	parser := scrape.NewParser(0, log.NewNop())
	return Deps{
		Catalog: store,
		Live:    live,
		Parser:  parser,
		Logger:  log.NewNop(),
		Chain: resolve.New(resolve.Config{
			Live:    live,
			Catalog: store,
			Parser:  parser,
			Logger:  log.NewNop(),
		}),
	}
}

func TestSearchLiveProducts_LiveAnswer(t *testing.T) {
	t.Parallel()

	live := &fakeLive{searchResults: []livedata.SearchResult{{
		Title:   "NVIDIA GeForce RTX 4090 24GB",
		Content: "Price: €1,699.99\nIn stock",
	}}}

	result, err := searchLiveProducts(chainDeps(&fakeQuerier{}, live))(context.Background(),
		params("product_query", "rtx 4090"), registry.Call{})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.Message, "from our live website")
	assert.Contains(t, result.Message, "NVIDIA GeForce RTX 4090 24GB")
	assert.Equal(t, "live", result.Data["dataSource"])
}

func TestSearchLiveProducts_CatalogBackstop(t *testing.T) {
	t.Parallel()

	live := &fakeLive{searchErr: errors.New("scrape service down")}
	q := &fakeQuerier{search: []catalog.Record{{Name: "Kingston Fury 32GB", Price: 119.90, StockQuantity: 25}}}

	result, err := searchLiveProducts(chainDeps(q, live))(context.Background(),
		params("product_query", "memory"), registry.Call{})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.Message, "from our database")
	assert.Equal(t, "database", result.Data["dataSource"])
}

func TestSearchLiveProducts_EmptySuggestsCategories(t *testing.T) {
	t.Parallel()

	result, err := searchLiveProducts(chainDeps(&fakeQuerier{}, nil))(context.Background(),
		params("product_query", "unobtainium"), registry.Call{})
	require.NoError(t, err)
	require.True(t, result.Success, "finding nothing is not a failure")

	suggestions, ok := result.Data["suggestions"].([]string)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(suggestions), 3)
}

func TestSearchLiveProducts_CatalogErrorSurfaces(t *testing.T) {
	t.Parallel()

	backendErr := errors.New("connection refused")
	_, err := searchLiveProducts(chainDeps(&fakeQuerier{searchErr: backendErr}, nil))(context.Background(),
		params("product_query", "ssd"), registry.Call{})
	require.ErrorIs(t, err, backendErr)
}

func TestGetLiveProductDetails_URLOnlyInvocation(t *testing.T) {
	t.Parallel()

	// The platform may send just the page URL, with no name or SKU at all.
	live := &fakeLive{fetchContent: "# ASUS ROG Strix B650-A\nPrice: €249.90\nIn stock\nSpecifications: AM5, DDR5"}

	result, err := getLiveProductDetails(chainDeps(&fakeQuerier{}, live))(context.Background(),
		params("product_url", "https://example.com/b650a"), registry.Call{})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.False(t, result.RequiresInput)
	assert.Equal(t, "https://example.com/b650a", live.fetchedURL)
	assert.Contains(t, result.Message, "from our live website")
	assert.Contains(t, result.Message, "Price: €249.90")
}

func TestGetLiveProductDetails_SearchesWhenNoURL(t *testing.T) {
	t.Parallel()

	live := &fakeLive{
		searchResults: []livedata.SearchResult{{Title: "hit", URL: "https://example.com/found"}},
		fetchContent:  "# Samsung 990 PRO 2TB\nPrice: €189.99\nAvailable",
	}

	result, err := getLiveProductDetails(chainDeps(&fakeQuerier{}, live))(context.Background(),
		params("product_sku", "SSD-990P-2TB"), registry.Call{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/found", live.fetchedURL)
	assert.Contains(t, result.Message, "Samsung 990 PRO 2TB")
}

func TestGetLiveProductDetails_CatalogFallback(t *testing.T) {
	t.Parallel()

	live := &fakeLive{fetchErr: errors.New("scrape failed")}
	q := &fakeQuerier{exact: &catalog.Record{
		Name: "Intel Core i9-14900K", Price: 620, StockQuantity: 5, Specifications: "24 cores",
	}}

	result, err := getLiveProductDetails(chainDeps(q, live))(context.Background(),
		params("product_sku", "CPU-14900K", "product_url", "https://example.com/cpu"), registry.Call{})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.Message, "from our database")
	assert.Contains(t, result.Message, "Intel Core i9-14900K")
}

func TestGetLiveProductDetails_NothingFoundAsksForMore(t *testing.T) {
	t.Parallel()

	result, err := getLiveProductDetails(chainDeps(&fakeQuerier{}, nil))(context.Background(),
		params("product_sku", "mystery"), registry.Call{})
	require.NoError(t, err)
	assert.True(t, result.RequiresInput)
	assert.Contains(t, result.Message, "couldn't find the details")
}

func TestGetLiveProductDetails_NoInputAsksWhichProduct(t *testing.T) {
	t.Parallel()

	result, err := getLiveProductDetails(chainDeps(&fakeQuerier{}, nil))(context.Background(),
		params(), registry.Call{})
	require.NoError(t, err)
	assert.True(t, result.RequiresInput)
	assert.Contains(t, result.Message, "Which product")
}
