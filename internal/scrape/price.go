package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/koopa0/storevoice/internal/product"
)

// priceRe matches a currency-symbol-adjacent numeric token in both
// "symbol-before" (€1,699.99) and "symbol-after" (1699.99 €) forms.
var priceRe = regexp.MustCompile(`€\s*([0-9][0-9.,]*)|([0-9][0-9.,]*)\s*€`)

// extractPrice returns the first in-bounds price found in s, or nil.
// Out-of-range values are treated as extraction noise, not real prices.
func (p *Parser) extractPrice(s string) *float64 {
	for _, match := range priceRe.FindAllStringSubmatch(s, -1) {
		token := match[1]
		if token == "" {
			token = match[2]
		}
		value, ok := parseAmount(token)
		if !ok {
			continue
		}
		if value >= 0 && value < p.ceiling {
			return product.Float(value)
		}
	}
	return nil
}

// extractPrices collects up to bound in-bounds prices, in document order.
func (p *Parser) extractPrices(s string, bound int) []float64 {
	var prices []float64
	for _, match := range priceRe.FindAllStringSubmatch(s, -1) {
		if len(prices) >= bound {
			break
		}
		token := match[1]
		if token == "" {
			token = match[2]
		}
		value, ok := parseAmount(token)
		if !ok {
			continue
		}
		if value > 0 && value < p.ceiling {
			prices = append(prices, value)
		}
	}
	return prices
}

// parseAmount parses a numeric token with thousands separators, so that
// "1,699.99" yields 1699.99.
func parseAmount(token string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	cleaned = strings.TrimRight(cleaned, ".")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
