package scrape

import "strings"

// Relevance scores how well candidate text matches a query: the count of
// query terms of at least three characters found in the text, normalized
// by the number of such terms. The result is in [0,1] and is used only
// for ranking, never shown to the customer.
//
// A candidate containing the query verbatim scores 1.0 regardless of term
// counts, so exact matches always outrank partial ones.
func Relevance(text, query string) float64 {
	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return 0
	}
	if strings.Contains(textLower, queryLower) {
		return 1.0
	}

	var considered, matched int
	for _, term := range strings.Fields(queryLower) {
		if len(term) < 3 {
			continue
		}
		considered++
		if strings.Contains(textLower, term) {
			matched++
		}
	}
	if considered == 0 {
		return 0
	}
	return float64(matched) / float64(considered)
}
