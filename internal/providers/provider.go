// Package providers contains the upstream content adapters. Each adapter
// knows how to build requests for one provider and normalize its responses
// into the unified ContentItem shape. Adapters never let missing upstream
// fields through: every absent field is substituted with its documented
// default.
package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pulsefeed/aggregator/internal/models"
)

// Provider error taxonomy. Every adapter failure wraps one of these so the
// orchestrator can classify it without knowing the provider.
var (
	// ErrProviderUnavailable is returned when a provider's credentials or
	// configuration are missing. Permanent until reconfigured.
	ErrProviderUnavailable = errors.New("provider not configured")

	// ErrProviderAuth is returned when a credential exchange fails.
	ErrProviderAuth = errors.New("provider authentication failed")

	// ErrProviderRequest is returned when the upstream responds with a
	// non-success status or an unparseable body.
	ErrProviderRequest = errors.New("provider request failed")
)

// Defaults substituted for absent upstream fields.
const (
	defaultTitle       = "No title"
	defaultDescription = "No description available"
)

const defaultHTTPTimeout = 10 * time.Second

// Query is the generic content query every adapter accepts. How it maps to
// upstream parameters (browse vs. search endpoint, pagination style) is a
// per-adapter decision.
type Query struct {
	SearchTerm string
	Page       int
	PageSize   int
}

// Provider fetches and normalizes content for a single category source.
type Provider interface {
	// Category returns the category this provider serves. Every item the
	// provider returns carries exactly this category.
	Category() models.Category

	// Fetch retrieves content for the query. It fails with one of
	// ErrProviderUnavailable, ErrProviderAuth or ErrProviderRequest.
	Fetch(ctx context.Context, q Query) ([]models.ContentItem, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// orDefault returns s unless it is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// timestampOr parses an RFC 3339 timestamp, falling back to now when the
// value is absent or malformed.
func timestampOr(raw string, now time.Time) time.Time {
	if raw == "" {
		return now
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return now
	}
	return ts
}
