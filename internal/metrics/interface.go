// Package metrics tracks aggregation counters in Redis for the stats
// endpoint.
package metrics

import (
	"context"
	"time"
)

// Recorder is the interface the orchestrator reports aggregation outcomes
// through. The Redis-backed Tracker implements it; tests use Nop.
type Recorder interface {
	// IncrementFetched adds n to the fetched-items counter for a category
	IncrementFetched(ctx context.Context, category string, n int)
	// IncrementDegraded increments the degraded counter for a category
	IncrementDegraded(ctx context.Context, category string)
	// IncrementFallback increments the fallback-served counter for a category
	IncrementFallback(ctx context.Context, category string)
	// SetLastAggregation records when the last aggregation ran
	SetLastAggregation(ctx context.Context, ts time.Time)
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) IncrementFetched(context.Context, string, int) {}
func (Nop) IncrementDegraded(context.Context, string)     {}
func (Nop) IncrementFallback(context.Context, string)     {}
func (Nop) SetLastAggregation(context.Context, time.Time) {}
