package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed/aggregator/internal/models"
)

func TestParseCategory(t *testing.T) {
	for _, c := range models.AllCategories() {
		parsed, err := models.ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := models.ParseCategory("podcasts")
	require.ErrorIs(t, err, models.ErrInvalidCategory)

	_, err = models.ParseCategory("")
	require.ErrorIs(t, err, models.ErrInvalidCategory)

	// Matching is exact; no case folding.
	_, err = models.ParseCategory("News")
	require.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestContentID(t *testing.T) {
	a := models.ContentID(models.CategoryNews, "Parliament passes budget", "https://example.com/budget")
	b := models.ContentID(models.CategoryNews, "Parliament passes budget", "https://example.com/budget")
	assert.Equal(t, a, b, "same inputs must hash to the same id")

	assert.True(t, strings.HasPrefix(a, "news-"))

	// Any field changing changes the id.
	assert.NotEqual(t, a, models.ContentID(models.CategorySports, "Parliament passes budget", "https://example.com/budget"))
	assert.NotEqual(t, a, models.ContentID(models.CategoryNews, "Another headline", "https://example.com/budget"))
	assert.NotEqual(t, a, models.ContentID(models.CategoryNews, "Parliament passes budget", "https://example.com/other"))

	// Field boundaries are delimited: shifting text between title and URL
	// must not collide.
	assert.NotEqual(t,
		models.ContentID(models.CategoryNews, "ab", "c"),
		models.ContentID(models.CategoryNews, "a", "bc"))
}

func TestPreferenceUpdateRequestValidate(t *testing.T) {
	req := models.PreferenceUpdateRequest{Categories: []string{"news", "music", "news"}}
	categories, err := req.Validate()
	require.NoError(t, err)
	// Duplicates collapse, order of first occurrence is kept.
	assert.Equal(t, []models.Category{models.CategoryNews, models.CategoryMusic}, categories)

	req = models.PreferenceUpdateRequest{Categories: []string{"news", "bogus"}}
	_, err = req.Validate()
	require.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestDefaultCategories(t *testing.T) {
	assert.Equal(t,
		[]models.Category{models.CategoryNews, models.CategoryTechnology, models.CategoryEntertainment},
		models.DefaultCategories())
}
