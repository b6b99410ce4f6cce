package product

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Product{Name: "RTX 4090"}.Valid())
	assert.False(t, Product{}.Valid())
	assert.False(t, Product{Name: "   "}.Valid())
}

func TestJSONOmitsInternalFields(t *testing.T) {
	t.Parallel()

	p := Product{
		Name:      "RTX 4090",
		Source:    SourceLive,
		Relevance: 0.9,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "0.9", "relevance is a ranking detail, never exposed")
	assert.Contains(t, string(data), `"source":"live"`)
	assert.NotContains(t, string(data), `"price"`, "absent price is omitted, not null")
}
