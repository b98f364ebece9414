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

// DefaultNewsAPIBaseURL is the production NewsAPI endpoint prefix.
const DefaultNewsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPIConfig holds credentials and endpoint configuration for the
// NewsAPI adapters.
type NewsAPIConfig struct {
	APIKey  string
	BaseURL string // defaults to DefaultNewsAPIBaseURL
	Country string // top-headlines country for the general news profile
	Timeout time.Duration
}

// newsProfile describes how one category maps onto NewsAPI's endpoints.
// Browse and search routing differ per category: general news browses
// country headlines, sports and entertainment browse category headlines,
// technology always searches a fixed publisher set.
type newsProfile struct {
	category       models.Category
	headlineTopic  string // top-headlines category parameter; empty = country headlines
	searchDomains  string // domains filter applied to /everything searches
	defaultQuery   string // non-empty forces /everything even without a search term
	fallbackSource string // source label when the article carries none
}

var newsProfiles = map[models.Category]newsProfile{
	models.CategoryNews: {
		category:       models.CategoryNews,
		fallbackSource: "Unknown",
	},
	models.CategoryTechnology: {
		category:       models.CategoryTechnology,
		searchDomains:  "techcrunch.com,theverge.com,wired.com,arstechnica.com",
		defaultQuery:   "technology",
		fallbackSource: "Tech News",
	},
	models.CategorySports: {
		category:       models.CategorySports,
		headlineTopic:  "sports",
		searchDomains:  "espn.com,sports.yahoo.com,bleacherreport.com",
		fallbackSource: "Sports News",
	},
	models.CategoryEntertainment: {
		category:       models.CategoryEntertainment,
		headlineTopic:  "entertainment",
		searchDomains:  "variety.com,hollywoodreporter.com,ew.com",
		fallbackSource: "Entertainment News",
	},
}

// NewsAPIProvider serves one news-style category from NewsAPI.
type NewsAPIProvider struct {
	cfg     NewsAPIConfig
	profile newsProfile
	client  *http.Client
	logger  logger.Logger
}

// NewNewsAPIProvider creates a NewsAPI adapter for the given category.
// Supported categories are news, technology, sports and entertainment.
func NewNewsAPIProvider(category models.Category, cfg NewsAPIConfig, log logger.Logger) (*NewsAPIProvider, error) {
	profile, ok := newsProfiles[category]
	if !ok {
		return nil, fmt.Errorf("%w: no NewsAPI profile for category %q", models.ErrInvalidCategory, category)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNewsAPIBaseURL
	}
	if cfg.Country == "" {
		cfg.Country = "in"
	}
	return &NewsAPIProvider{
		cfg:     cfg,
		profile: profile,
		client:  newHTTPClient(cfg.Timeout),
		logger:  log,
	}, nil
}

// Category returns the category this adapter serves.
func (p *NewsAPIProvider) Category() models.Category {
	return p.profile.category
}

// Fetch retrieves articles, using top-headlines for browsing and
// /everything for free-text searches.
func (p *NewsAPIProvider) Fetch(ctx context.Context, q Query) ([]models.ContentItem, error) {
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: NewsAPI key missing for %s", ErrProviderUnavailable, p.profile.category)
	}

	reqURL := p.buildURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
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
		return nil, fmt.Errorf("%w: NewsAPI returned status %d", ErrProviderRequest, resp.StatusCode)
	}

	var body newsAPIResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrProviderRequest, err)
	}
	if body.Articles == nil {
		return nil, fmt.Errorf("%w: response missing articles", ErrProviderRequest)
	}

	items := p.normalize(body.Articles)

	p.logger.Debug("Fetched NewsAPI content",
		logger.String("category", p.profile.category.String()),
		logger.Int("items", len(items)),
		logger.Duration("duration", time.Since(start)),
	)

	return items, nil
}

func (p *NewsAPIProvider) buildURL(q Query) string {
	params := url.Values{}
	params.Set("apiKey", p.cfg.APIKey)
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("page", strconv.Itoa(q.Page))

	term := q.SearchTerm
	if term == "" {
		term = p.profile.defaultQuery
	}

	// Free-text queries go through /everything, scoped to the profile's
	// publisher domains when it has any.
	if term != "" {
		params.Set("q", term)
		params.Set("sortBy", "publishedAt")
		if p.profile.searchDomains != "" {
			params.Set("domains", p.profile.searchDomains)
		}
		return p.cfg.BaseURL + "/everything?" + params.Encode()
	}

	if p.profile.headlineTopic != "" {
		params.Set("category", p.profile.headlineTopic)
	} else {
		params.Set("country", p.cfg.Country)
	}
	return p.cfg.BaseURL + "/top-headlines?" + params.Encode()
}

func (p *NewsAPIProvider) normalize(articles []newsAPIArticle) []models.ContentItem {
	now := time.Now().UTC()
	items := make([]models.ContentItem, 0, len(articles))
	for _, a := range articles {
		title := orDefault(a.Title, defaultTitle)
		items = append(items, models.ContentItem{
			ID:          models.ContentID(p.profile.category, title, a.URL),
			Title:       title,
			Description: orDefault(a.Description, defaultDescription),
			ImageURL:    a.URLToImage,
			URL:         a.URL,
			Category:    p.profile.category,
			PublishedAt: timestampOr(a.PublishedAt, now),
			Source:      orDefault(a.Source.Name, p.profile.fallbackSource),
		})
	}
	return items
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}
