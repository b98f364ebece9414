package providers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/models"
	"github.com/pulsefeed/aggregator/internal/providers"
)

func tmdbProvider(baseURL string) *providers.TMDBProvider {
	return providers.NewTMDBProvider(providers.TMDBConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	}, logger.NewNopLogger())
}

func TestTMDBProvider_BrowsePopular(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{
			"results": [
				{
					"id": 603,
					"title": "The Matrix",
					"overview": "A hacker discovers reality.",
					"poster_path": "/matrix.jpg",
					"release_date": "1999-03-31"
				},
				{
					"id": 604,
					"title": "",
					"overview": "",
					"poster_path": "",
					"release_date": "not-a-date"
				}
			],
			"total_results": 2
		}`))
	}))
	defer server.Close()

	p := tmdbProvider(server.URL)

	items, err := p.Fetch(context.Background(), providers.Query{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "movie-603", items[0].ID)
	assert.Equal(t, "The Matrix", items[0].Title)
	assert.Equal(t, providers.DefaultTMDBImageURL+"/matrix.jpg", items[0].ImageURL)
	assert.Equal(t, "https://www.themoviedb.org/movie/603", items[0].URL)
	assert.Equal(t, models.CategoryMovies, items[0].Category)
	assert.Equal(t, "TMDB", items[0].Source)
	assert.Equal(t, "1999-03-31", items[0].PublishedAt.Format("2006-01-02"))

	assert.Equal(t, "No title", items[1].Title)
	assert.Equal(t, "No description available", items[1].Description)
	assert.Empty(t, items[1].ImageURL)
	assert.False(t, items[1].PublishedAt.IsZero())
}

func TestTMDBProvider_SearchRoutesToSearchMovie(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"results":[],"total_results":0}`))
	}))
	defer server.Close()

	p := tmdbProvider(server.URL)

	_, err := p.Fetch(context.Background(), providers.Query{SearchTerm: "matrix", Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, "/search/movie", gotPath)
	assert.Equal(t, "matrix", gotQuery)
}

func TestTMDBProvider_TruncatesToPageSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[`)
		for i := 0; i < 20; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":%d,"title":"Movie %d","release_date":"2026-01-0%d"}`, i, i, i%9+1)
		}
		fmt.Fprint(w, `],"total_results":20}`)
	}))
	defer server.Close()

	p := tmdbProvider(server.URL)

	items, err := p.Fetch(context.Background(), providers.Query{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestTMDBProvider_Errors(t *testing.T) {
	t.Run("missing key is unavailable", func(t *testing.T) {
		p := providers.NewTMDBProvider(providers.TMDBConfig{}, logger.NewNopLogger())

		_, err := p.Fetch(context.Background(), providers.Query{Page: 1, PageSize: 10})
		require.ErrorIs(t, err, providers.ErrProviderUnavailable)
	})

	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := tmdbProvider(server.URL).Fetch(context.Background(), providers.Query{Page: 1, PageSize: 10})
		require.ErrorIs(t, err, providers.ErrProviderRequest)
	})

	t.Run("missing results field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"total_results":0}`))
		}))
		defer server.Close()

		_, err := tmdbProvider(server.URL).Fetch(context.Background(), providers.Query{Page: 1, PageSize: 10})
		require.ErrorIs(t, err, providers.ErrProviderRequest)
	})
}
