// Package scrape extracts normalized product records from raw web content.
//
// Extraction is explicitly heuristic and best-effort. The HTML path pairs
// the Nth extracted title with the Nth extracted price by position; when a
// page interleaves unrelated prices the pairing can be wrong. This is a
// documented precision limitation, not a correctness bug: the chain ranks
// candidates by relevance and the formatter omits missing fields, so an
// occasional mis-paired price degrades a single answer, never the call.
package scrape

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/koopa0/storevoice/internal/product"
)

// DefaultPriceCeiling bounds extracted prices. Values at or above the
// ceiling are discarded as extraction noise rather than real prices.
const DefaultPriceCeiling = 10000

// minTitleLength filters out navigation fragments and stray markup text.
const minTitleLength = 4

// titleSelectors are the ordered structural patterns for product titles:
// heading, anchor and span elements carrying a "product"-like class hint.
var titleSelectors = []string{
	"h1[class*='product'], h2[class*='product'], h3[class*='product'], h4[class*='product'], h5[class*='product'], h6[class*='product']",
	"div[class*='product'][class*='title'], div[class*='product'][class*='name']",
	"a[class*='product']",
	"span[class*='product']",
}

// stock keywords for the structured-text path, both locales.
var (
	outOfStockPhrases = []string{"out of stock", "unavailable", "εξαντλημένο", "μη διαθέσιμο"}
	inStockPhrases    = []string{"in stock", "available", "διαθέσιμο"}
	blockKeepPhrases  = []string{"€", "price", "stock", "available", "τιμή", "απόθεμα", "διαθέσιμο"}
)

// Parser turns raw fetched content into normalized product records.
// It is stateless apart from configuration and safe for concurrent use.
type Parser struct {
	ceiling float64
	logger  *slog.Logger
}

// NewParser creates a parser with the given price ceiling. A ceiling of
// zero or below selects DefaultPriceCeiling. A nil logger uses the default.
func NewParser(priceCeiling float64, logger *slog.Logger) *Parser {
	if priceCeiling <= 0 {
		priceCeiling = DefaultPriceCeiling
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{ceiling: priceCeiling, logger: logger}
}

// ParseHTML extracts products from raw HTML markup, typically a vendor
// search results page fetched by the direct tier.
//
// Titles and prices are collected independently and paired by position.
// At most maxCandidates*2 working candidates are considered; final
// truncation is the resolution chain's job after ranking.
func (p *Parser) ParseHTML(raw, query string, maxCandidates int) []product.Product {
	if maxCandidates <= 0 {
		maxCandidates = 5
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		p.logger.Debug("html parse failed", "error", err)
		return nil
	}

	bound := maxCandidates * 2
	titles := p.extractTitles(doc, bound)
	prices := p.extractPrices(doc.Text(), bound)

	products := make([]product.Product, 0, len(titles))
	for i, title := range titles {
		if len(products) >= bound {
			break
		}
		candidate := product.Product{
			Name:      title,
			Source:    product.SourceScrapedFallback,
			InStock:   product.Bool(true), // listed on the page, assume sellable
			Relevance: Relevance(title, query),
		}
		if i < len(prices) {
			candidate.Price = product.Float(prices[i])
		}
		if candidate.Valid() {
			products = append(products, candidate)
		}
	}
	return products
}

// ParseText extracts products from loosely structured text or markdown,
// typically live-tier scrape output. Content is split into paragraph-like
// blocks; blocks carrying a currency token or stock keyword are retained.
// The first line becomes the name, the remainder the description.
func (p *Parser) ParseText(raw, query string, maxCandidates int) []product.Product {
	if maxCandidates <= 0 {
		maxCandidates = 5
	}
	bound := maxCandidates * 2

	var products []product.Product
	for _, block := range strings.Split(raw, "\n\n") {
		if len(products) >= bound {
			break
		}
		if !keepBlock(block) {
			continue
		}

		lines := strings.Split(strings.TrimSpace(block), "\n")
		name := cleanMarkdown(lines[0])
		if len(name) < minTitleLength {
			continue
		}

		candidate := product.Product{
			Name:    name,
			Source:  product.SourceLive,
			InStock: stockState(block),
			Price:   p.extractPrice(block),
		}
		if len(lines) > 1 {
			candidate.Description = strings.TrimSpace(strings.Join(lines[1:], " "))
		}
		candidate.Relevance = Relevance(candidate.Name+" "+candidate.Description, query)
		products = append(products, candidate)
	}
	return products
}

// ParseProductPage extracts a single product from a product-detail page.
// The main content is isolated with readability before text heuristics run,
// so navigation chrome and recommendation blocks do not pollute the record.
func (p *Parser) ParseProductPage(raw, pageURL string) (product.Product, bool) {
	record := product.Product{Source: product.SourceLive, URL: pageURL}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(raw), base)
	content := raw
	if err == nil {
		if article.Title != "" {
			record.Name = strings.TrimSpace(article.Title)
		}
		if article.TextContent != "" {
			content = article.TextContent
		}
	} else {
		p.logger.Debug("readability extraction failed, using raw content", "error", err)
	}

	// Fall back to the first heading-like line for the name.
	if record.Name == "" {
		for _, line := range strings.Split(content, "\n") {
			line = cleanMarkdown(line)
			if len(line) >= minTitleLength {
				record.Name = line
				break
			}
		}
	}
	if !record.Valid() {
		return product.Product{}, false
	}

	record.Price = p.extractPrice(content)
	record.InStock = stockState(content)
	record.Description = specificationExcerpt(content)
	return record, true
}

// extractTitles collects deduplicated product-like titles in selector order.
func (p *Parser) extractTitles(doc *goquery.Document, bound int) []string {
	seen := make(map[string]struct{})
	var titles []string
	for _, selector := range titleSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if len(titles) >= bound {
				return
			}
			title := strings.TrimSpace(sel.Text())
			if len(title) < minTitleLength {
				return
			}
			key := strings.ToLower(title)
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			titles = append(titles, title)
		})
		if len(titles) >= bound {
			break
		}
	}
	return titles
}

// keepBlock reports whether a text block looks product-bearing.
func keepBlock(block string) bool {
	lower := strings.ToLower(block)
	for _, phrase := range blockKeepPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// stockState derives the tri-state availability flag from block text.
// An explicit out-of-stock phrase wins over an availability phrase.
func stockState(block string) *bool {
	lower := strings.ToLower(block)
	for _, phrase := range outOfStockPhrases {
		if strings.Contains(lower, phrase) {
			return product.Bool(false)
		}
	}
	for _, phrase := range inStockPhrases {
		if strings.Contains(lower, phrase) {
			return product.Bool(true)
		}
	}
	return nil
}

// cleanMarkdown strips heading and emphasis markers from a line.
func cleanMarkdown(line string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "#*_ "))
}

// specificationExcerpt returns a bounded excerpt starting at a
// specifications or features section when one exists.
func specificationExcerpt(content string) string {
	lower := strings.ToLower(content)
	start := strings.Index(lower, "specification")
	if start < 0 {
		start = strings.Index(lower, "features")
	}
	if start < 0 {
		return ""
	}
	const excerptLen = 500
	end := start + excerptLen
	if end > len(content) {
		end = len(content)
	}
	return strings.TrimSpace(content[start:end])
}
