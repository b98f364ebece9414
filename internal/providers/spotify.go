package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/models"
)

// Spotify endpoint defaults.
const (
	DefaultSpotifyBaseURL  = "https://api.spotify.com/v1"
	DefaultSpotifyTokenURL = "https://accounts.spotify.com/api/token"

	defaultSpotifyQuery = "top tracks"
)

// SpotifyConfig holds the client-credentials pair and endpoint
// configuration for the music adapter.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // defaults to DefaultSpotifyBaseURL
	TokenURL     string // defaults to DefaultSpotifyTokenURL
	Timeout      time.Duration
}

// SpotifyProvider serves the music category from Spotify's track search.
// Spotify requires a two-step protocol: exchange the client credentials for
// a short-lived bearer token, then query with the token attached. The token
// is acquired fresh on every fetch.
type SpotifyProvider struct {
	cfg    SpotifyConfig
	client *http.Client
	logger logger.Logger
}

// NewSpotifyProvider creates the music adapter.
func NewSpotifyProvider(cfg SpotifyConfig, log logger.Logger) *SpotifyProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSpotifyBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultSpotifyTokenURL
	}
	return &SpotifyProvider{
		cfg:    cfg,
		client: newHTTPClient(cfg.Timeout),
		logger: log,
	}
}

// Category returns the music category.
func (p *SpotifyProvider) Category() models.Category {
	return models.CategoryMusic
}

// Fetch searches tracks, defaulting to a popular-tracks query when no
// search term is given.
func (p *SpotifyProvider) Fetch(ctx context.Context, q Query) ([]models.ContentItem, error) {
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: Spotify credentials missing", ErrProviderUnavailable)
	}

	token, err := p.token(ctx)
	if err != nil {
		return nil, err
	}

	term := orDefault(q.SearchTerm, defaultSpotifyQuery)

	params := url.Values{}
	params.Set("q", term)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(q.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrProviderRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: Spotify returned status %d", ErrProviderRequest, resp.StatusCode)
	}

	var body spotifySearchResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrProviderRequest, err)
	}
	if body.Tracks == nil {
		return nil, fmt.Errorf("%w: response missing tracks", ErrProviderRequest)
	}

	items := normalizeTracks(body.Tracks.Items)

	p.logger.Debug("Fetched Spotify content",
		logger.Int("items", len(items)),
		logger.Duration("duration", time.Since(start)),
	)

	return items, nil
}

// token performs the client-credentials grant and returns the bearer token.
func (p *SpotifyProvider) token(ctx context.Context) (string, error) {
	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TokenURL, form)
	if err != nil {
		return "", fmt.Errorf("%w: create token request: %w", ErrProviderAuth, err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(p.cfg.ClientID + ":" + p.cfg.ClientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned status %d", ErrProviderAuth, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode token response: %w", ErrProviderAuth, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: token response missing access_token", ErrProviderAuth)
	}

	return body.AccessToken, nil
}

func normalizeTracks(tracks []spotifyTrack) []models.ContentItem {
	now := time.Now().UTC()
	items := make([]models.ContentItem, 0, len(tracks))
	for _, t := range tracks {
		title := orDefault(t.Name, defaultTitle)
		if t.Name != "" && len(t.Artists) > 0 && t.Artists[0].Name != "" {
			title = t.Name + " - " + t.Artists[0].Name
		}
		description := defaultDescription
		if t.Album.Name != "" {
			description = "Album: " + t.Album.Name
		}
		imageURL := ""
		if len(t.Album.Images) > 0 {
			imageURL = t.Album.Images[0].URL
		}
		items = append(items, models.ContentItem{
			ID:          "music-" + t.ID,
			Title:       title,
			Description: description,
			ImageURL:    imageURL,
			URL:         t.ExternalURLs.Spotify,
			Category:    models.CategoryMusic,
			PublishedAt: releaseDateOr(t.Album.ReleaseDate, now),
			Source:      "Spotify",
		})
	}
	return items
}

// releaseDateOr parses a Spotify album release date, which may carry day,
// month or year precision.
func releaseDateOr(raw string, now time.Time) time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return now
}

type spotifySearchResponse struct {
	Tracks *struct {
		Items []spotifyTrack `json:"items"`
		Total int            `json:"total"`
	} `json:"tracks"`
}

type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}
