package providers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed/aggregator/internal/models"
	"github.com/pulsefeed/aggregator/internal/providers"
)

func TestStaticProvider_ServesOnlyItsCategory(t *testing.T) {
	all := providers.SampleItems()
	mixed := append(all[models.CategorySports], all[models.CategoryMovies]...)

	p := providers.NewStaticProvider(models.CategorySports, mixed)
	assert.Equal(t, models.CategorySports, p.Category())

	items, err := p.Fetch(context.Background(), providers.Query{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, models.CategorySports, item.Category)
	}
}

func TestStaticProvider_FiltersBySearchTerm(t *testing.T) {
	p := providers.NewStaticProvider(models.CategorySports, providers.SampleItems()[models.CategorySports])

	items, err := p.Fetch(context.Background(), providers.Query{SearchTerm: "WORLD CUP", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)

	items, err = p.Fetch(context.Background(), providers.Query{SearchTerm: "argentina", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "FIFA World Cup 2022 Highlights", items[0].Title)

	items, err = p.Fetch(context.Background(), providers.Query{SearchTerm: "no such thing", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStaticProvider_HonorsPageSize(t *testing.T) {
	p := providers.NewStaticProvider(models.CategoryMovies, providers.SampleItems()[models.CategoryMovies])

	items, err := p.Fetch(context.Background(), providers.Query{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSampleItems_HaveStableIDs(t *testing.T) {
	first := providers.SampleItems()
	second := providers.SampleItems()

	for category, items := range first {
		require.NotEmpty(t, items, "category %s has no samples", category)
		for i, item := range items {
			assert.Equal(t, item.ID, second[category][i].ID)
			assert.NotEmpty(t, item.ID)
			assert.Equal(t, category, item.Category)
			assert.False(t, item.PublishedAt.IsZero())
		}
	}

	// No evergreen dataset exists for general news.
	assert.NotContains(t, first, models.CategoryNews)
}
