// Package respond renders normalized result sets into locale-appropriate
// voice messages plus the structured payload returned to the platform.
//
// Every message names its data provenance ("from our live website" vs
// "from our database") so call transcripts can be audited against the
// tier that answered. Absent prices and stock flags are omitted, never
// rendered as placeholders; a voice assistant reading out "price
// unknown" per product is worse than saying nothing.
package respond

import (
	"fmt"
	"strings"

	"github.com/koopa0/storevoice/internal/locale"
	"github.com/koopa0/storevoice/internal/product"
	"github.com/koopa0/storevoice/internal/registry"
)

// Products renders a ranked, non-empty result set.
func Products(products []product.Product, l locale.Locale, tier product.Source) registry.Result {
	if len(products) == 0 {
		return NotFound("", l)
	}

	var b strings.Builder
	b.WriteString(locale.Sprintf(l, "search.found", len(products), provenance(l, tier)))
	b.WriteString("\n\n")
	for i, p := range products {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, p.Name))
		if p.Price != nil {
			b.WriteString(fmt.Sprintf(" - €%.2f", *p.Price))
		}
		if phrase := stockPhrase(l, p.InStock); phrase != "" {
			b.WriteString(" (" + phrase + ")")
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(locale.T(l, "search.followup"))

	return registry.Result{
		Success: true,
		Message: b.String(),
		Data: map[string]any{
			"products":   products,
			"count":      len(products),
			"dataSource": dataSource(tier),
		},
	}
}

// NotFound renders the empty-result case: a legitimate business outcome,
// not a failure, so Success stays true and the message suggests what the
// store does carry.
func NotFound(query string, l locale.Locale) registry.Result {
	categories := locale.Categories(l)
	message := locale.Sprintf(l, "search.not_found", query, strings.Join(categories, ", "))
	return registry.Result{
		Success: true,
		Message: message,
		Data: map[string]any{
			"found":       false,
			"suggestions": categories,
		},
	}
}

// Detail renders a single product's details.
func Detail(p product.Product, l locale.Locale, tier product.Source) registry.Result {
	var b strings.Builder
	b.WriteString(locale.Sprintf(l, "detail.header", provenance(l, tier), p.Name))
	b.WriteString("\n\n")
	if p.Price != nil {
		b.WriteString(locale.Sprintf(l, "detail.price", *p.Price))
		b.WriteByte('\n')
	}
	if p.InStock != nil {
		b.WriteString(locale.Sprintf(l, "detail.availability", stockPhrase(l, p.InStock)))
		b.WriteByte('\n')
	}
	if p.Description != "" {
		b.WriteByte('\n')
		b.WriteString(locale.Sprintf(l, "detail.description", p.Description))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(locale.T(l, "detail.followup"))

	return registry.Result{
		Success: true,
		Message: b.String(),
		Data: map[string]any{
			"product":    p,
			"dataSource": dataSource(tier),
		},
	}
}

// provenance is the spoken data-source phrase.
func provenance(l locale.Locale, tier product.Source) string {
	if tier == product.SourceCatalog {
		return locale.T(l, "source.db")
	}
	return locale.T(l, "source.live")
}

// dataSource is the machine-readable provenance tag.
func dataSource(tier product.Source) string {
	if tier == product.SourceCatalog {
		return "database"
	}
	return "live"
}

// stockPhrase renders the tri-state stock flag; unknown yields "".
func stockPhrase(l locale.Locale, inStock *bool) string {
	switch {
	case inStock == nil:
		return ""
	case *inStock:
		return locale.T(l, "stock.in")
	default:
		return locale.T(l, "stock.out")
	}
}
