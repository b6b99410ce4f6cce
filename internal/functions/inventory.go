package functions

import (
	"context"
	"strings"

	"github.com/koopa0/storevoice/internal/catalog"
	"github.com/koopa0/storevoice/internal/locale"
	"github.com/koopa0/storevoice/internal/registry"
)

// suggestionLimit bounds the alternatives offered when a product is
// missing or out of stock. Three names is about what a listener retains.
const suggestionLimit = 3

// Quantity discount thresholds. Loyalty pricing beyond these is handled
// at the counter, not by the assistant.
const (
	discountQty5   = 5
	discountQty10  = 10
	discountRate5  = 0.05
	discountRate10 = 0.10
)

// checkInventory answers whether a product is in stock. An exact SKU or
// name match answers directly; otherwise a fuzzy search narrows to one
// product or asks the customer to choose.
func checkInventory(deps Deps) registry.Executor {
	return func(ctx context.Context, params map[string]any, call registry.Call) (registry.Result, error) {
		name := registry.StringParam(params, "product_name")
		sku := registry.StringParam(params, "product_sku")
		category := registry.StringParam(params, "category")

		query := name
		if query == "" {
			query = sku
		}
		l := locale.Resolve(call.Language(), query)
		if query == "" {
			return registry.Result{
				Success:       true,
				RequiresInput: true,
				Message:       locale.T(l, "inventory.need_input"),
			}, nil
		}

		// An explicit SKU is the strongest identifier the platform sends;
		// try it exactly before the spoken name.
		identifier := sku
		if identifier == "" {
			identifier = name
		}
		record, err := deps.Catalog.GetBySkuOrName(ctx, identifier)
		if err != nil {
			return registry.Result{}, err
		}
		if record != nil {
			return stockAnswer(ctx, deps, *record, l), nil
		}

		records, err := deps.Catalog.SearchByTerm(ctx, query, suggestionLimit+2, category)
		if err != nil {
			return registry.Result{}, err
		}

		switch len(records) {
		case 0:
			suggestions := suggestionNames(ctx, deps.Catalog, query)
			return registry.Result{
				Success: true,
				Message: locale.Sprintf(l, "inventory.not_found", query),
				Data: map[string]any{
					"found":       false,
					"suggestions": suggestions,
				},
			}, nil
		case 1:
			return stockAnswer(ctx, deps, records[0], l), nil
		default:
			names := make([]string, 0, len(records))
			for _, r := range records {
				names = append(names, r.Name)
			}
			return registry.Result{
				Success: true,
				Message: locale.Sprintf(l, "inventory.multiple", len(records), query) + " " + strings.Join(names, ", ") + ".",
				Data: map[string]any{
					"found":    true,
					"multiple": true,
					"products": names,
				},
			}, nil
		}
	}
}

// stockAnswer renders the in-stock or out-of-stock answer for one record.
// Out-of-stock answers carry alternatives so the conversation can continue.
func stockAnswer(ctx context.Context, deps Deps, record catalog.Record, l locale.Locale) registry.Result {
	if record.StockQuantity > 0 {
		return registry.Result{
			Success: true,
			Message: locale.Sprintf(l, "inventory.available", record.Name, record.StockQuantity, record.Price),
			Data: map[string]any{
				"found":     true,
				"available": true,
				"product":   record.Name,
				"sku":       record.SKU,
				"stock":     record.StockQuantity,
				"price":     record.Price,
			},
		}
	}

	suggestions := suggestionNames(ctx, deps.Catalog, record.Category)
	return registry.Result{
		Success: true,
		Message: locale.Sprintf(l, "inventory.out", record.Name),
		Data: map[string]any{
			"found":       true,
			"available":   false,
			"product":     record.Name,
			"sku":         record.SKU,
			"suggestions": suggestions,
		},
	}
}

// getProductPrice quotes a unit and total price with quantity discounts
// applied at 5 and 10 units.
func getProductPrice(deps Deps) registry.Executor {
	return func(ctx context.Context, params map[string]any, call registry.Call) (registry.Result, error) {
		query := registry.StringParam(params, "product_identifier")
		l := locale.Resolve(call.Language(), query)
		if query == "" {
			return registry.Result{
				Success:       true,
				RequiresInput: true,
				Message:       locale.T(l, "price.need_input"),
			}, nil
		}

		quantity := registry.IntParam(params, "quantity", 1)
		if quantity < 1 {
			quantity = 1
		}

		record, err := deps.Catalog.GetBySkuOrName(ctx, query)
		if err != nil {
			return registry.Result{}, err
		}
		if record == nil {
			records, err := deps.Catalog.SearchByTerm(ctx, query, 2, "")
			if err != nil {
				return registry.Result{}, err
			}
			switch len(records) {
			case 0:
				return registry.Result{
					Success: true,
					Message: locale.Sprintf(l, "price.not_found", query),
					Data:    map[string]any{"found": false},
				}, nil
			case 1:
				record = &records[0]
			default:
				return registry.Result{
					Success:       true,
					RequiresInput: true,
					Message:       locale.T(l, "price.multiple"),
				}, nil
			}
		}

		rate, suffixKey := discountFor(quantity)
		suffix := ""
		if suffixKey != "" {
			// The suffix contains a literal percent sign, so it must not
			// pass through Sprintf.
			suffix = locale.T(l, suffixKey)
		}
		total := record.Price * float64(quantity) * (1 - rate)

		return registry.Result{
			Success: true,
			Message: locale.Sprintf(l, "price.quote",
				record.Name, record.Price, suffix, quantity, total, record.StockQuantity),
			Data: map[string]any{
				"found":      true,
				"product":    record.Name,
				"sku":        record.SKU,
				"unitPrice":  record.Price,
				"quantity":   quantity,
				"discount":   rate,
				"totalPrice": total,
				"stock":      record.StockQuantity,
			},
		}, nil
	}
}

// discountFor maps a quantity to its discount rate and message key.
func discountFor(quantity int) (float64, string) {
	switch {
	case quantity >= discountQty10:
		return discountRate10, "price.discount10"
	case quantity >= discountQty5:
		return discountRate5, "price.discount5"
	default:
		return 0, ""
	}
}

// suggestionNames fetches alternative product names, best-effort.
func suggestionNames(ctx context.Context, store *catalog.Store, term string) []string {
	records := store.Suggestions(ctx, term, suggestionLimit)
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}
