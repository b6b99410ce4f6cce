// Package resolve orchestrates the ordered attempt at answering a product
// query: live website data, then a direct scrape of the vendor's public
// search page, then the persistent catalog.
//
// The first two tiers degrade silently: their failures are expected
// operating conditions under voice-call time pressure and are only logged
// as degraded-path telemetry. The catalog tier is the backstop; its
// errors propagate, because failing it means there is no data at all.
package resolve

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/koopa0/storevoice/internal/livedata"
	"github.com/koopa0/storevoice/internal/product"
	"github.com/koopa0/storevoice/internal/telemetry"
)

const (
	// MaxResults bounds the caller-specified result count.
	MaxResults = 10

	// DefaultResults applies when the caller does not specify a count.
	DefaultResults = 5

	// snippetLen bounds the per-hit content considered by the parser.
	snippetLen = 200
)

// CatalogSearcher is the backstop tier interface, satisfied by
// catalog.Store.
type CatalogSearcher interface {
	SearchProducts(ctx context.Context, term string, limit int, category string) ([]product.Product, error)
}

// Parser extracts product candidates from raw content, satisfied by
// scrape.Parser.
type Parser interface {
	ParseHTML(raw, query string, maxCandidates int) []product.Product
	ParseText(raw, query string, maxCandidates int) []product.Product
}

// Fetcher fetches the vendor's public search page, satisfied by
// DirectFetcher.
type Fetcher interface {
	FetchSearchPage(ctx context.Context, query string) (string, error)
}

// Config assembles a Chain. Live may be nil: the capability's absence is
// an expected runtime state, modeled as an explicit injection rather than
// a process-wide flag so tests can exercise the absent path trivially.
type Config struct {
	Live    livedata.Capability
	Direct  Fetcher
	Catalog CatalogSearcher
	Parser  Parser
	Sink    telemetry.Sink
	Logger  *slog.Logger
}

// Chain resolves product queries across the three tiers. It holds no
// mutable state and is safe for concurrent use.
type Chain struct {
	live    livedata.Capability
	direct  Fetcher
	catalog CatalogSearcher
	parser  Parser
	sink    telemetry.Sink
	logger  *slog.Logger
}

// New creates a chain. Catalog and Parser are required; the live and
// direct tiers are optional and skipped when nil.
func New(cfg Config) *Chain {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = telemetry.NewNop()
	}
	return &Chain{
		live:    cfg.Live,
		direct:  cfg.Direct,
		catalog: cfg.Catalog,
		parser:  cfg.Parser,
		sink:    sink,
		logger:  logger,
	}
}

// Search resolves a query. It returns the ranked, truncated result set
// and the tier that produced it. An empty set with a nil error means all
// tiers legitimately found nothing, a normal business outcome. A non-nil
// error means the backstop itself failed.
func (c *Chain) Search(ctx context.Context, query, category string, maxResults int) ([]product.Product, product.Source, error) {
	maxResults = clampResults(maxResults)

	if products := c.liveTier(ctx, query, category, maxResults); len(products) > 0 {
		c.answered(ctx, product.SourceLive)
		return rank(products, maxResults), product.SourceLive, nil
	}

	if products := c.directTier(ctx, query, maxResults); len(products) > 0 {
		c.answered(ctx, product.SourceScrapedFallback)
		return rank(products, maxResults), product.SourceScrapedFallback, nil
	}

	products, err := c.catalog.SearchProducts(ctx, query, maxResults, category)
	if err != nil {
		return nil, product.SourceCatalog, err
	}
	if len(products) > 0 {
		c.answered(ctx, product.SourceCatalog)
	}
	return rank(products, maxResults), product.SourceCatalog, nil
}

// liveTier attempts the live-data capability. Absence, timeouts and
// failures all fall through; nothing here may raise.
func (c *Chain) liveTier(ctx context.Context, query, category string, maxResults int) []product.Product {
	if c.live == nil {
		return nil
	}

	results, err := c.live.Search(ctx, query, livedata.SearchOptions{
		Category: category,
		Limit:    maxResults,
	})
	if err != nil {
		c.degraded(ctx, product.SourceLive, err)
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	return filterValid(c.parser.ParseText(searchResultsText(results), query, maxResults))
}

// directTier fetches and parses the vendor's public search page.
func (c *Chain) directTier(ctx context.Context, query string, maxResults int) []product.Product {
	if c.direct == nil {
		return nil
	}

	markup, err := c.direct.FetchSearchPage(ctx, query)
	if err != nil {
		c.degraded(ctx, product.SourceScrapedFallback, err)
		return nil
	}
	return filterValid(c.parser.ParseHTML(markup, query, maxResults))
}

// searchResultsText folds live search hits into the paragraph-block form
// the structured-text parser consumes: title line, then a bounded content
// snippet, blank line between hits.
func searchResultsText(results []livedata.SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if r.Title != "" {
			b.WriteString(r.Title)
			b.WriteByte('\n')
		}
		b.WriteString(truncateRunes(r.Content, snippetLen))
	}
	return b.String()
}

// truncateRunes cuts s to at most n bytes without splitting a rune. Greek
// hit content is two bytes per letter, so a plain byte slice would leave
// invalid UTF-8 at the cut.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// rank sorts by relevance descending and truncates. The sort is stable so
// equal relevance preserves order of discovery: first seen wins.
func rank(products []product.Product, maxResults int) []product.Product {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Relevance > products[j].Relevance
	})
	if len(products) > maxResults {
		products = products[:maxResults]
	}
	return products
}

func filterValid(products []product.Product) []product.Product {
	valid := products[:0]
	for _, p := range products {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	return valid
}

func clampResults(n int) int {
	if n <= 0 {
		return DefaultResults
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}

// degraded logs and reports a swallowed tier failure. The customer never
// hears about it; the next tier answers instead.
func (c *Chain) degraded(ctx context.Context, tier product.Source, err error) {
	c.logger.Info("tier degraded, falling through", "tier", string(tier), "error", err)
	c.sink.Emit(ctx, telemetry.Event{
		Type:       telemetry.EventDegradedTier,
		Tier:       string(tier),
		Success:    false,
		ErrorClass: telemetry.ErrorClass(err),
	})
}

func (c *Chain) answered(ctx context.Context, tier product.Source) {
	c.sink.Emit(ctx, telemetry.Event{
		Type:    telemetry.EventTierAnswered,
		Tier:    string(tier),
		Success: true,
	})
}
