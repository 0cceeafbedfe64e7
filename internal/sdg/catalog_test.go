package sdg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
)

func TestCatalogOrderedAndComplete(t *testing.T) {
	all := sdg.Catalog()
	require.Len(t, all, 17)
	require.Equal(t, sdg.Size, len(all))
	for i, tag := range all {
		require.Equal(t, i+1, tag.ID)
		require.NotEmpty(t, tag.Title)
		require.Regexp(t, `^#[0-9A-F]{6}$`, tag.Color)
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	all := sdg.Catalog()
	all[0].Title = "changed"

	tag, ok := sdg.Lookup(1)
	require.True(t, ok)
	require.Equal(t, "No Poverty", tag.Title)
}

func TestLookup(t *testing.T) {
	tag, ok := sdg.Lookup(4)
	require.True(t, ok)
	require.Equal(t, "Quality Education", tag.Title)
	require.Equal(t, "#C5192D", tag.Color)

	for _, id := range []int{0, -1, 18} {
		_, ok := sdg.Lookup(id)
		require.False(t, ok, "id %d", id)
	}
}
