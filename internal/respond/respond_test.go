package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/storevoice/internal/locale"
	"github.com/koopa0/storevoice/internal/product"
)

func TestProducts_English(t *testing.T) {
	t.Parallel()

	products := []product.Product{
		{
			Name:    "NVIDIA GeForce RTX 4090",
			Price:   product.Float(1699.99),
			InStock: product.Bool(true),
			Source:  product.SourceLive,
		},
		{
			Name:   "NVIDIA GeForce RTX 4080 Super",
			Source: product.SourceLive,
		},
	}

	result := Products(products, locale.EN, product.SourceLive)
	require.True(t, result.Success)
	assert.Contains(t, result.Message, "I found 2 products from our live website:")
	assert.Contains(t, result.Message, "1. NVIDIA GeForce RTX 4090 - €1699.99 (In Stock)")
	assert.Contains(t, result.Message, "2. NVIDIA GeForce RTX 4080 Super\n",
		"missing price and stock are omitted, not rendered as placeholders")
	assert.Contains(t, result.Message, "Would you like more information")

	assert.Equal(t, 2, result.Data["count"])
	assert.Equal(t, "live", result.Data["dataSource"])
}

func TestProducts_CatalogProvenance(t *testing.T) {
	t.Parallel()

	products := []product.Product{{Name: "Kingston Fury 32GB", Source: product.SourceCatalog}}

	result := Products(products, locale.EN, product.SourceCatalog)
	assert.Contains(t, result.Message, "from our database")
	assert.Equal(t, "database", result.Data["dataSource"])
}

func TestProducts_ScrapedFallbackSpeaksAsLive(t *testing.T) {
	t.Parallel()

	products := []product.Product{{Name: "Samsung 990 PRO", Source: product.SourceScrapedFallback}}

	result := Products(products, locale.EN, product.SourceScrapedFallback)
	assert.Contains(t, result.Message, "from our live website")
	assert.Equal(t, "live", result.Data["dataSource"])
}

func TestNotFound_Greek(t *testing.T) {
	t.Parallel()

	result := NotFound("κβαντικός υπολογιστής", locale.EL)
	require.True(t, result.Success, "an empty result set is a business outcome, not a failure")
	assert.Contains(t, result.Message, "κβαντικός υπολογιστής")
	assert.Contains(t, result.Message, "κάρτες γραφικών")

	suggestions, ok := result.Data["suggestions"].([]string)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(suggestions), 3)
	assert.Equal(t, false, result.Data["found"])
}

func TestDetail(t *testing.T) {
	t.Parallel()

	p := product.Product{
		Name:        "ASUS ROG Strix B650-A",
		Price:       product.Float(249.90),
		InStock:     product.Bool(false),
		Description: "AM5 socket, DDR5 support",
		Source:      product.SourceLive,
	}

	result := Detail(p, locale.EN, product.SourceLive)
	require.True(t, result.Success)
	assert.Contains(t, result.Message, "ASUS ROG Strix B650-A")
	assert.Contains(t, result.Message, "Price: €249.90")
	assert.Contains(t, result.Message, "Availability: Out of Stock")
	assert.Contains(t, result.Message, "Description: AM5 socket, DDR5 support")
	assert.Contains(t, result.Message, "book an appointment")
}

func TestDetail_OmitsUnknownFields(t *testing.T) {
	t.Parallel()

	p := product.Product{Name: "Mystery Box", Source: product.SourceCatalog}

	result := Detail(p, locale.EN, product.SourceCatalog)
	assert.NotContains(t, result.Message, "Price:")
	assert.NotContains(t, result.Message, "Availability:")
	assert.NotContains(t, result.Message, "Description:")
}
