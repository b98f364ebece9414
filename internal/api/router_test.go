package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed/aggregator/internal/aggregator"
	"github.com/pulsefeed/aggregator/internal/api"
	"github.com/pulsefeed/aggregator/internal/config"
	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAggregation struct {
	lastRequest aggregator.Request
	result      *aggregator.Result
}

func (f *fakeAggregation) Aggregate(_ context.Context, req aggregator.Request) *aggregator.Result {
	f.lastRequest = req
	if f.result != nil {
		return f.result
	}
	return &aggregator.Result{Items: []models.ContentItem{}, Degraded: []models.Category{}}
}

type fakePreferences struct {
	preference *models.Preference
	err        error
}

func (f *fakePreferences) Get(_ context.Context, userID string) (*models.Preference, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.preference != nil {
		return f.preference, nil
	}
	return &models.Preference{UserID: userID, Categories: models.DefaultCategories()}, nil
}

func (f *fakePreferences) Upsert(_ context.Context, userID string, categories []models.Category) (*models.Preference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Preference{UserID: userID, Categories: categories, UpdatedAt: time.Now()}, nil
}

type fakeFavorites struct {
	favorites []models.Favorite
	createErr error
	deleteErr error
}

func (f *fakeFavorites) List(_ context.Context, _ string) ([]models.Favorite, error) {
	return f.favorites, nil
}

func (f *fakeFavorites) Create(_ context.Context, userID string, req *models.FavoriteCreateRequest) (*models.Favorite, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Favorite{
		ID:       uuid.New(),
		UserID:   userID,
		Category: req.Category,
		Title:    req.Title,
		URL:      req.URL,
	}, nil
}

func (f *fakeFavorites) Delete(_ context.Context, _ string, _ uuid.UUID) error {
	return f.deleteErr
}

type testRouterOptions struct {
	aggregation *fakeAggregation
	preferences *fakePreferences
	favorites   *fakeFavorites
}

func newTestRouter(opts testRouterOptions) *gin.Engine {
	if opts.aggregation == nil {
		opts.aggregation = &fakeAggregation{}
	}
	if opts.preferences == nil {
		opts.preferences = &fakePreferences{}
	}
	if opts.favorites == nil {
		opts.favorites = &fakeFavorites{}
	}

	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	cfg.Aggregation.PageSize = 10

	router := api.NewRouter(api.Deps{
		Aggregation: opts.aggregation,
		Preferences: opts.preferences,
		Favorites:   opts.favorites,
		Config:      cfg,
		Logger:      logger.NewNopLogger(),
		Version:     "test",
	})
	return router.SetupRoutes()
}

func doRequest(engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetFeed(t *testing.T) {
	agg := &fakeAggregation{
		result: &aggregator.Result{
			Items: []models.ContentItem{
				{ID: "news-abc", Title: "Headline", Category: models.CategoryNews},
			},
			TotalResults: 1,
			Degraded:     []models.Category{},
		},
	}
	engine := newTestRouter(testRouterOptions{aggregation: agg})

	w := doRequest(engine, http.MethodGet, "/api/v1/feed?categories=news,movies&q=headline", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t,
		[]models.Category{models.CategoryNews, models.CategoryMovies},
		agg.lastRequest.Categories)
	assert.Equal(t, "headline", agg.lastRequest.SearchTerm)

	var body struct {
		Items        []models.ContentItem `json:"items"`
		TotalResults int                  `json:"totalResults"`
		AllDegraded  bool                 `json:"allDegraded"`
		Page         int                  `json:"page"`
		PageSize     int                  `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.TotalResults)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 10, body.PageSize)
}

func TestGetFeed_RequiresCategories(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	w := doRequest(engine, http.MethodGet, "/api/v1/feed", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeed_RejectsUnknownCategory(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	w := doRequest(engine, http.MethodGet, "/api/v1/feed?categories=news,podcasts", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeed_PaginatesMergedResult(t *testing.T) {
	items := make([]models.ContentItem, 12)
	for i := range items {
		items[i] = models.ContentItem{ID: uuid.NewString(), Title: "Item", Category: models.CategoryNews}
	}
	agg := &fakeAggregation{
		result: &aggregator.Result{Items: items, TotalResults: 12, Degraded: []models.Category{}},
	}
	engine := newTestRouter(testRouterOptions{aggregation: agg})

	w := doRequest(engine, http.MethodGet, "/api/v1/feed?categories=news&page=2&pageSize=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items        []models.ContentItem `json:"items"`
		TotalResults int                  `json:"totalResults"`
		Page         int                  `json:"page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 5)
	assert.Equal(t, 12, body.TotalResults)
	assert.Equal(t, 2, body.Page)
}

func TestGetUserFeed_UsesStoredPreference(t *testing.T) {
	agg := &fakeAggregation{}
	prefs := &fakePreferences{
		preference: &models.Preference{
			UserID:     "user-1",
			Categories: []models.Category{models.CategorySports},
		},
	}
	engine := newTestRouter(testRouterOptions{aggregation: agg, preferences: prefs})

	w := doRequest(engine, http.MethodGet, "/api/v1/users/user-1/feed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []models.Category{models.CategorySports}, agg.lastRequest.Categories)
}

func TestGetPreferences(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	w := doRequest(engine, http.MethodGet, "/api/v1/users/user-1/preferences", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pref models.Preference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pref))
	assert.Equal(t, "user-1", pref.UserID)
	assert.Equal(t, models.DefaultCategories(), pref.Categories)
}

func TestUpdatePreferences(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	payload := []byte(`{"categories":["movies","music"]}`)
	w := doRequest(engine, http.MethodPut, "/api/v1/users/user-1/preferences", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var pref models.Preference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pref))
	assert.Equal(t, []models.Category{models.CategoryMovies, models.CategoryMusic}, pref.Categories)
}

func TestUpdatePreferences_Invalid(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	testCases := []struct {
		name    string
		payload string
	}{
		{name: "empty set", payload: `{"categories":[]}`},
		{name: "unknown category", payload: `{"categories":["podcasts"]}`},
		{name: "malformed json", payload: `{"categories":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(engine, http.MethodPut, "/api/v1/users/user-1/preferences", []byte(tc.payload))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateFavorite(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	payload := []byte(`{"category":"movies","title":"Dune","url":"https://example.com/dune"}`)
	w := doRequest(engine, http.MethodPost, "/api/v1/users/user-1/favorites", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var favorite models.Favorite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favorite))
	assert.Equal(t, "Dune", favorite.Title)
	assert.Equal(t, models.CategoryMovies, favorite.Category)
}

func TestCreateFavorite_Duplicate(t *testing.T) {
	engine := newTestRouter(testRouterOptions{
		favorites: &fakeFavorites{createErr: models.ErrAlreadyExists},
	})

	payload := []byte(`{"category":"movies","title":"Dune","url":"https://example.com/dune"}`)
	w := doRequest(engine, http.MethodPost, "/api/v1/users/user-1/favorites", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteFavorite(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	w := doRequest(engine, http.MethodDelete, "/api/v1/users/user-1/favorites/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteFavorite_Errors(t *testing.T) {
	t.Run("bad uuid", func(t *testing.T) {
		engine := newTestRouter(testRouterOptions{})
		w := doRequest(engine, http.MethodDelete, "/api/v1/users/user-1/favorites/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		engine := newTestRouter(testRouterOptions{
			favorites: &fakeFavorites{deleteErr: models.ErrNotFound},
		})
		w := doRequest(engine, http.MethodDelete, "/api/v1/users/user-1/favorites/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealthCheck_ReportsDegradedDependencies(t *testing.T) {
	// No database or redis wired: still 200, but degraded.
	engine := newTestRouter(testRouterOptions{})

	w := doRequest(engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string `json:"status"`
		Database struct {
			Connected bool `json:"connected"`
		} `json:"database"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Database.Connected)
}

func TestStats_NotConfigured(t *testing.T) {
	engine := newTestRouter(testRouterOptions{})

	w := doRequest(engine, http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
