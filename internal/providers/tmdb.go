package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/models"
)

// TMDB endpoint defaults.
const (
	DefaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	DefaultTMDBImageURL = "https://image.tmdb.org/t/p/w500"

	tmdbMovieURLPrefix = "https://www.themoviedb.org/movie/"
	tmdbReleaseLayout  = "2006-01-02"
)

// TMDBConfig holds credentials and endpoint configuration for the movie
// adapter.
type TMDBConfig struct {
	APIKey   string
	BaseURL  string // defaults to DefaultTMDBBaseURL
	ImageURL string // poster prefix, defaults to DefaultTMDBImageURL
	Timeout  time.Duration
}

// TMDBProvider serves the movies category from The Movie Database.
type TMDBProvider struct {
	cfg    TMDBConfig
	client *http.Client
	logger logger.Logger
}

// NewTMDBProvider creates the movie adapter.
func NewTMDBProvider(cfg TMDBConfig, log logger.Logger) *TMDBProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTMDBBaseURL
	}
	if cfg.ImageURL == "" {
		cfg.ImageURL = DefaultTMDBImageURL
	}
	return &TMDBProvider{
		cfg:    cfg,
		client: newHTTPClient(cfg.Timeout),
		logger: log,
	}
}

// Category returns the movies category.
func (p *TMDBProvider) Category() models.Category {
	return models.CategoryMovies
}

// Fetch retrieves movies: popular titles when browsing, /search/movie for
// free-text queries. TMDB pages are fixed-size, so results are truncated to
// the requested page size.
func (p *TMDBProvider) Fetch(ctx context.Context, q Query) ([]models.ContentItem, error) {
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: TMDB API key missing", ErrProviderUnavailable)
	}

	params := url.Values{}
	params.Set("api_key", p.cfg.APIKey)
	params.Set("page", strconv.Itoa(q.Page))

	endpoint := p.cfg.BaseURL + "/movie/popular"
	if q.SearchTerm != "" {
		params.Set("query", q.SearchTerm)
		endpoint = p.cfg.BaseURL + "/search/movie"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrProviderRequest, err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: TMDB returned status %d", ErrProviderRequest, resp.StatusCode)
	}

	var body tmdbResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrProviderRequest, err)
	}
	if body.Results == nil {
		return nil, fmt.Errorf("%w: response missing results", ErrProviderRequest)
	}

	results := body.Results
	if q.PageSize > 0 && len(results) > q.PageSize {
		results = results[:q.PageSize]
	}

	items := p.normalize(results)

	p.logger.Debug("Fetched TMDB content",
		logger.Int("items", len(items)),
		logger.Duration("duration", time.Since(start)),
	)

	return items, nil
}

func (p *TMDBProvider) normalize(movies []tmdbMovie) []models.ContentItem {
	now := time.Now().UTC()
	items := make([]models.ContentItem, 0, len(movies))
	for _, m := range movies {
		imageURL := ""
		if m.PosterPath != "" {
			imageURL = p.cfg.ImageURL + m.PosterPath
		}
		publishedAt := now
		if ts, err := time.Parse(tmdbReleaseLayout, m.ReleaseDate); err == nil {
			publishedAt = ts
		}
		items = append(items, models.ContentItem{
			ID:          fmt.Sprintf("movie-%d", m.ID),
			Title:       orDefault(m.Title, defaultTitle),
			Description: orDefault(m.Overview, defaultDescription),
			ImageURL:    imageURL,
			URL:         tmdbMovieURLPrefix + strconv.Itoa(m.ID),
			Category:    models.CategoryMovies,
			PublishedAt: publishedAt,
			Source:      "TMDB",
		})
	}
	return items
}

type tmdbResponse struct {
	Results      []tmdbMovie `json:"results"`
	TotalResults int         `json:"total_results"`
}

type tmdbMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}
