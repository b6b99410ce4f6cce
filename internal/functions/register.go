// Package functions implements the store operations exposed to the voice
// platform: inventory checks, price quotes, live product search, product
// details and static store information.
//
// Each operation resolves its response locale per invocation, answers
// through the shared resolution chain or catalog, and returns a spoken
// message plus structured data. Operation registration declares the cache
// policy and the fallback sentence spoken when everything else fails.
package functions

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/koopa0/storevoice/internal/catalog"
	"github.com/koopa0/storevoice/internal/livedata"
	"github.com/koopa0/storevoice/internal/registry"
	"github.com/koopa0/storevoice/internal/resolve"
	"github.com/koopa0/storevoice/internal/scrape"
)

// Cache lifetimes per operation. Stock moves fastest, prices faster than
// search listings, store hours basically never.
const (
	inventoryTTL = 5 * time.Minute
	priceTTL     = 3 * time.Minute
	searchTTL    = 10 * time.Minute
	detailTTL    = 5 * time.Minute
	storeInfoTTL = time.Hour
)

// storePhone is spoken in every fallback so a failed lookup still leaves
// the customer a way forward.
const storePhone = "77-111-104"

// Deps carries the shared dependencies the operations close over.
type Deps struct {
	Catalog *catalog.Store
	Chain   *resolve.Chain
	Live    livedata.Capability // nil when the capability is absent
	Parser  *scrape.Parser
	Logger  *slog.Logger
}

// RegisterAll registers every store operation on the registry. It fails
// fast on the first registration error; partial registration is useless.
func RegisterAll(reg *registry.Registry, deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	ops := []registry.Operation{
		{
			Name:            "checkInventory",
			CacheTTL:        inventoryTTL,
			FallbackMessage: "I'm having trouble checking our inventory right now. Please call us at " + storePhone + " and our staff will help you.",
			Params:          inventorySchema(),
			ClarifyMessage:  "I need a product name or SKU to check inventory. What product are you looking for?",
			Execute:         checkInventory(deps),
		},
		{
			Name:            "getProductPrice",
			CacheTTL:        priceTTL,
			FallbackMessage: "I'm having trouble looking up prices right now. Please call us at " + storePhone + " for an up-to-date quote.",
			Params:          priceSchema(),
			ClarifyMessage:  "I need a product name or SKU to check pricing. What product are you interested in?",
			Execute:         getProductPrice(deps),
		},
		{
			Name:            "searchLiveProducts",
			CacheTTL:        searchTTL,
			FallbackMessage: "I'm having trouble searching our products right now. Please call us at " + storePhone + " for assistance.",
			Params:          searchSchema(),
			ClarifyMessage:  "What product would you like me to search for?",
			Execute:         searchLiveProducts(deps),
		},
		{
			Name:            "getLiveProductDetails",
			CacheTTL:        detailTTL,
			FallbackMessage: "I'm having trouble retrieving that product's details right now. Please call us at " + storePhone + " and we will help you.",
			Params:          detailSchema(),
			ClarifyMessage:  "Which product would you like details about?",
			Execute:         getLiveProductDetails(deps),
		},
		{
			Name:            "getStoreInfo",
			CacheTTL:        storeInfoTTL,
			FallbackMessage: "You can reach us at " + storePhone + " for any information about our store.",
			Params:          storeInfoSchema(),
			Execute:         getStoreInfo(deps),
		},
	}

	for _, op := range ops {
		if err := reg.Register(op); err != nil {
			return fmt.Errorf("registering %s: %w", op.Name, err)
		}
	}
	return nil
}

// inventorySchema accepts a spoken product name, an exact SKU, or both.
// Neither is schema-required: a SKU-only call must reach the executor, and
// the executor asks for input when both are missing.
func inventorySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"product_name": {Type: "string"},
			"product_sku":  {Type: "string"},
			"category":     {Type: "string"},
		},
	}
}

// priceSchema adds the optional quantity to the required identifier.
func priceSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"product_identifier": {Type: "string"},
			"quantity":           {Type: "number"},
		},
		Required: []string{"product_identifier"},
	}
}

func searchSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"product_query": {Type: "string"},
			"category":      {Type: "string"},
			"max_results":   {Type: "number"},
		},
		Required: []string{"product_query"},
	}
}

// detailSchema requires nothing: the platform may send a direct page URL,
// a SKU, or neither. The executor asks for input in the last case.
func detailSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"product_url": {Type: "string"},
			"product_sku": {Type: "string"},
		},
	}
}

func storeInfoSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"info_type": {Type: "string"},
			"language":  {Type: "string"},
		},
	}
}
