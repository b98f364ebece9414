package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pulsefeed/aggregator/internal/logger"
)

const counterTTL = CounterTTLDays * 24 * time.Hour

// Tracker implements Recorder on top of Redis. Counter writes are
// best-effort: a Redis outage must never degrade an aggregation call, so
// failures are logged and swallowed.
type Tracker struct {
	client redis.UniversalClient
	keys   *RedisKeys
	logger logger.Logger
}

// NewTracker creates a Redis-backed metrics tracker.
func NewTracker(client redis.UniversalClient, log logger.Logger) *Tracker {
	return &Tracker{
		client: client,
		keys:   NewRedisKeys(KeyPrefixMetrics),
		logger: log,
	}
}

// IncrementFetched adds n to the fetched-items counter for a category.
func (t *Tracker) IncrementFetched(ctx context.Context, category string, n int) {
	t.incrBy(ctx, t.keys.Fetched(category), int64(n))
}

// IncrementDegraded increments the degraded counter for a category.
func (t *Tracker) IncrementDegraded(ctx context.Context, category string) {
	t.incrBy(ctx, t.keys.Degraded(category), 1)
}

// IncrementFallback increments the fallback-served counter for a category.
func (t *Tracker) IncrementFallback(ctx context.Context, category string) {
	t.incrBy(ctx, t.keys.Fallback(category), 1)
}

// SetLastAggregation records when the last aggregation ran.
func (t *Tracker) SetLastAggregation(ctx context.Context, ts time.Time) {
	if err := t.client.Set(ctx, KeyLastAggregation, ts.UTC().Format(time.RFC3339), 0).Err(); err != nil {
		t.logger.Warn("Failed to record last aggregation time", logger.Error(err))
	}
}

func (t *Tracker) incrBy(ctx context.Context, key string, n int64) {
	pipe := t.client.Pipeline()
	pipe.IncrBy(ctx, key, n)
	pipe.Expire(ctx, key, counterTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		t.logger.Warn("Failed to increment counter",
			logger.String("redis_key", key),
			logger.Error(err),
		)
	}
}

// CategoryStats holds the counters for one category.
type CategoryStats struct {
	Fetched  int64 `json:"fetched"`
	Degraded int64 `json:"degraded"`
	Fallback int64 `json:"fallback"`
}

// Stats is the aggregated view served by the stats endpoint.
type Stats struct {
	Categories      map[string]CategoryStats `json:"categories"`
	LastAggregation string                   `json:"last_aggregation,omitempty"`
}

// GetStats reads the counters for the given categories.
func (t *Tracker) GetStats(ctx context.Context, categories []string) (*Stats, error) {
	stats := &Stats{Categories: make(map[string]CategoryStats, len(categories))}

	for _, category := range categories {
		cs := CategoryStats{
			Fetched:  t.counter(ctx, t.keys.Fetched(category)),
			Degraded: t.counter(ctx, t.keys.Degraded(category)),
			Fallback: t.counter(ctx, t.keys.Fallback(category)),
		}
		stats.Categories[category] = cs
	}

	last, err := t.client.Get(ctx, KeyLastAggregation).Result()
	if err == nil {
		stats.LastAggregation = last
	}

	return stats, nil
}

// counter reads a single counter, treating missing keys and errors as zero.
func (t *Tracker) counter(ctx context.Context, key string) int64 {
	raw, err := t.client.Get(ctx, key).Result()
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
