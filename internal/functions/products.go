package functions

import (
	"context"

	"github.com/koopa0/storevoice/internal/livedata"
	"github.com/koopa0/storevoice/internal/locale"
	"github.com/koopa0/storevoice/internal/product"
	"github.com/koopa0/storevoice/internal/registry"
	"github.com/koopa0/storevoice/internal/respond"
)

// searchLiveProducts searches through the full resolution chain: live
// website, direct fetch, catalog backstop. Empty results are a normal
// outcome and come back with category suggestions.
func searchLiveProducts(deps Deps) registry.Executor {
	return func(ctx context.Context, params map[string]any, call registry.Call) (registry.Result, error) {
		query := registry.StringParam(params, "product_query")
		l := locale.Resolve(call.Language(), query)
		if query == "" {
			return registry.Result{
				Success:       true,
				RequiresInput: true,
				Message:       locale.T(l, "search.need_input"),
			}, nil
		}

		category := registry.StringParam(params, "category")
		maxResults := registry.IntParam(params, "max_results", 0)

		products, tier, err := deps.Chain.Search(ctx, query, category, maxResults)
		if err != nil {
			return registry.Result{}, err
		}
		if len(products) == 0 {
			return respond.NotFound(query, l), nil
		}
		return respond.Products(products, l, tier), nil
	}
}

// getLiveProductDetails fetches one product's detail page live when the
// capability is present, falling back to the catalog record otherwise.
// The platform may send a direct page URL, a SKU, or both; nothing is
// mandatory, so missing input is answered with a question.
func getLiveProductDetails(deps Deps) registry.Executor {
	return func(ctx context.Context, params map[string]any, call registry.Call) (registry.Result, error) {
		pageURL := registry.StringParam(params, "product_url")
		sku := registry.StringParam(params, "product_sku")
		l := locale.Resolve(call.Language(), sku)

		if pageURL == "" && sku == "" {
			return registry.Result{
				Success:       true,
				RequiresInput: true,
				Message:       locale.T(l, "detail.need_input"),
			}, nil
		}

		if p, ok := liveDetail(ctx, deps, sku, pageURL); ok {
			return respond.Detail(p, l, p.Source), nil
		}

		if sku != "" {
			record, err := deps.Catalog.GetBySkuOrName(ctx, sku)
			if err != nil {
				return registry.Result{}, err
			}
			if record == nil {
				records, err := deps.Catalog.SearchByTerm(ctx, sku, 1, "")
				if err != nil {
					return registry.Result{}, err
				}
				if len(records) > 0 {
					record = &records[0]
				}
			}
			if record != nil {
				return respond.Detail(record.Product(), l, product.SourceCatalog), nil
			}
		}

		return registry.Result{
			Success:       true,
			RequiresInput: true,
			Message:       locale.T(l, "detail.not_found"),
		}, nil
	}
}

// liveDetail attempts the live path: fetch the given page URL, or search
// for the identifier first and fetch the top hit. All failures fall
// through to the catalog.
func liveDetail(ctx context.Context, deps Deps, identifier, pageURL string) (product.Product, bool) {
	if deps.Live == nil {
		return product.Product{}, false
	}

	if pageURL == "" {
		results, err := deps.Live.Search(ctx, identifier, livedata.SearchOptions{Limit: 1})
		if err != nil {
			deps.Logger.Info("live detail search degraded", "product", identifier, "error", err)
			return product.Product{}, false
		}
		for _, r := range results {
			if r.URL != "" {
				pageURL = r.URL
				break
			}
		}
	}
	if pageURL == "" {
		return product.Product{}, false
	}

	content, err := deps.Live.Fetch(ctx, pageURL, livedata.FetchHints{
		ExcludeTags: []string{"nav", "footer", "header"},
	})
	if err != nil {
		deps.Logger.Info("live detail fetch degraded", "url", pageURL, "error", err)
		return product.Product{}, false
	}

	return deps.Parser.ParseProductPage(content, pageURL)
}
