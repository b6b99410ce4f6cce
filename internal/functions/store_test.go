package functions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/storevoice/internal/registry"
)

func TestGetStoreInfo_Topics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  string
	}{
		{"hours", "Monday to Friday 9:00 to 19:00"},
		{"location", "171 Makarios Avenue"},
		{"contact", "77-111-104"},
		{"services", "custom PC builds"},
		{"", "computer hardware store"},
		{"nonsense", "computer hardware store"},
	}
	for _, tt := range tests {
		t.Run("topic "+tt.topic, func(t *testing.T) {
			t.Parallel()
			result, err := getStoreInfo(Deps{})(context.Background(),
				params("info_type", tt.topic), registry.Call{})
			require.NoError(t, err)
			require.True(t, result.Success)
			assert.Contains(t, result.Message, tt.want)
			assert.Equal(t, storePhone, result.Data["phone"])
		})
	}
}

func TestGetStoreInfo_Greek(t *testing.T) {
	t.Parallel()

	call := registry.Call{Profile: &registry.Profile{PreferredLanguage: "el"}}
	result, err := getStoreInfo(Deps{})(context.Background(), params("info_type", "hours"), call)
	require.NoError(t, err)
	assert.Contains(t, result.Message, "Δευτέρα με Παρασκευή")
}

func TestGetStoreInfo_LanguageParameterWins(t *testing.T) {
	t.Parallel()

	// An explicit language argument overrides everything else.
	result, err := getStoreInfo(Deps{})(context.Background(),
		params("info_type", "hours", "language", "el"), registry.Call{})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "Δευτέρα με Παρασκευή")
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	reg := registry.New(nil, nil)
	require.NoError(t, RegisterAll(reg, testDeps(&fakeQuerier{})))

	names := reg.Names()
	for _, want := range []string{
		"checkInventory",
		"getProductPrice",
		"searchLiveProducts",
		"getLiveProductDetails",
		"getStoreInfo",
	} {
		assert.Contains(t, names, want)
	}

	// Registering twice must fail on the duplicate names.
	require.Error(t, RegisterAll(reg, testDeps(&fakeQuerier{})))
}
