// Package aggregator implements the content aggregation pipeline: it fans
// out to the registered provider adapters for the requested categories,
// tolerates individual provider failures, substitutes fallback datasets
// where registered, and merges everything into one deduplicated,
// recency-sorted feed.
package aggregator

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/metrics"
	"github.com/pulsefeed/aggregator/internal/models"
	"github.com/pulsefeed/aggregator/internal/providers"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Request describes one aggregation call.
type Request struct {
	// Categories is the set of categories to aggregate. An empty set
	// yields an empty result without contacting any provider.
	Categories []models.Category

	// SearchTerm optionally filters results; providers with search
	// endpoints also route browse vs. search on it.
	SearchTerm string

	// Page and PageSize are per-category pagination hints passed through
	// to each provider.
	Page     int
	PageSize int
}

// Result is the merged aggregation outcome. Aggregation never fails as a
// whole; degraded categories are reported here instead.
type Result struct {
	Items []models.ContentItem `json:"items"`

	// TotalResults counts the deduplicated, filtered set before any
	// pagination the caller applies.
	TotalResults int `json:"totalResults"`

	// Degraded lists requested categories that contributed nothing
	// because their provider failed and no fallback could serve them.
	Degraded []models.Category `json:"degraded"`

	// AllDegraded is true when every requested category with a provider
	// failed and no fallback produced content.
	AllDegraded bool `json:"allDegraded"`
}

// Aggregator orchestrates the per-category provider fan-out.
type Aggregator struct {
	providers map[models.Category]providers.Provider
	fallbacks map[models.Category]providers.Provider
	recorder  metrics.Recorder
	logger    logger.Logger
	tracer    trace.Tracer
}

// New creates an Aggregator with no registered providers.
func New(recorder metrics.Recorder, log logger.Logger) *Aggregator {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Aggregator{
		providers: make(map[models.Category]providers.Provider),
		fallbacks: make(map[models.Category]providers.Provider),
		recorder:  recorder,
		logger:    log,
		tracer:    otel.Tracer("aggregator"),
	}
}

// Register adds the live provider for its category, replacing any previous
// registration.
func (a *Aggregator) Register(p providers.Provider) {
	a.providers[p.Category()] = p
}

// RegisterFallback adds the fallback provider consulted when the live
// provider for the same category fails.
func (a *Aggregator) RegisterFallback(p providers.Provider) {
	a.fallbacks[p.Category()] = p
}

// Aggregate runs the fan-out for the requested categories and merges the
// results. It always returns a Result; provider failures degrade the
// affected category instead of failing the call.
func (a *Aggregator) Aggregate(ctx context.Context, req Request) *Result {
	if len(req.Categories) == 0 {
		return &Result{Items: []models.ContentItem{}, Degraded: []models.Category{}}
	}

	if req.Page <= 0 {
		req.Page = defaultPage
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}

	query := providers.Query{
		SearchTerm: req.SearchTerm,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	// One slot per category; each goroutine writes only its own index, so
	// the join before the merge is the only synchronization needed.
	batches := make([][]models.ContentItem, len(req.Categories))
	degraded := make([]bool, len(req.Categories))
	attempted := 0

	var wg sync.WaitGroup
	for i, category := range req.Categories {
		provider, ok := a.providers[category]
		if !ok {
			// Categories with no adapter mapping are skipped silently.
			continue
		}
		attempted++
		wg.Add(1)
		go func(slot int, category models.Category, provider providers.Provider) {
			defer wg.Done()
			batches[slot], degraded[slot] = a.fetchCategory(ctx, category, provider, query)
		}(i, category, provider)
	}
	wg.Wait()

	items, total := Combine(batches, req.SearchTerm)

	result := &Result{
		Items:        items,
		TotalResults: total,
		Degraded:     []models.Category{},
	}
	for i, wasDegraded := range degraded {
		if wasDegraded {
			result.Degraded = append(result.Degraded, req.Categories[i])
		}
	}
	result.AllDegraded = attempted > 0 && len(result.Degraded) == attempted

	a.recorder.SetLastAggregation(ctx, time.Now())

	a.logger.Debug("Aggregation complete",
		logger.Int("categories", len(req.Categories)),
		logger.Int("items", len(result.Items)),
		logger.Int("degraded", len(result.Degraded)),
	)

	return result
}

// fetchCategory runs one provider fetch, substituting the registered
// fallback on failure. It returns the category's contribution and whether
// the category degraded (no content from either source).
func (a *Aggregator) fetchCategory(
	ctx context.Context,
	category models.Category,
	provider providers.Provider,
	query providers.Query,
) ([]models.ContentItem, bool) {
	spanCtx, span := a.tracer.Start(ctx, "provider.fetch",
		trace.WithAttributes(attribute.String("category", category.String())),
	)
	defer span.End()

	items, err := provider.Fetch(spanCtx, query)
	if err == nil {
		a.recorder.IncrementFetched(spanCtx, category.String(), len(items))
		return items, false
	}

	span.RecordError(err)
	a.logger.Warn("Provider fetch failed",
		logger.String("category", category.String()),
		logger.Error(err),
	)
	a.recorder.IncrementDegraded(spanCtx, category.String())

	fallback, ok := a.fallbacks[category]
	if !ok {
		return nil, true
	}

	items, err = fallback.Fetch(spanCtx, query)
	if err != nil || len(items) == 0 {
		return nil, true
	}

	a.logger.Info("Serving fallback content",
		logger.String("category", category.String()),
		logger.Int("items", len(items)),
	)
	a.recorder.IncrementFallback(spanCtx, category.String())
	return items, false
}
