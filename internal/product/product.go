// Package product defines the normalized product record shared by every
// data source in the resolution chain. All tiers (live website, direct
// scrape, catalog database) reduce their results to this shape before
// ranking and formatting.
package product

import "strings"

// Source identifies which tier produced a record. It is kept on every
// record so call transcripts can be audited against the data provenance.
type Source string

const (
	// SourceCatalog marks records from the persistent product catalog.
	SourceCatalog Source = "catalog"

	// SourceLive marks records obtained through the live-data capability.
	SourceLive Source = "live"

	// SourceScrapedFallback marks records extracted from a direct fetch of
	// the vendor's public pages when the live capability was unavailable.
	SourceScrapedFallback Source = "scraped-fallback"
)

// Product is the common shape produced by every data source.
//
// Price and InStock are pointers because both are tri-state: a scraped
// page often yields a name without a usable price, and stock information
// is frequently absent. Absent values are omitted from voice responses,
// never rendered as placeholders.
type Product struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	URL         string   `json:"url,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	Source      Source   `json:"source"`

	// Relevance is in [0,1] and is used only for ranking. It is never
	// shown to the customer.
	Relevance float64 `json:"-"`
}

// Valid reports whether the record survives the pre-ranking filter:
// records with an empty or whitespace-only name are discarded.
func (p Product) Valid() bool {
	return strings.TrimSpace(p.Name) != ""
}

// Float returns a pointer to v, for building optional price fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to b, for building tri-state stock fields.
func Bool(b bool) *bool { return &b }
