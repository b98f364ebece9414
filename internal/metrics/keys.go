package metrics

import "fmt"

const (
	// KeyPrefixMetrics is the prefix for all metrics keys
	KeyPrefixMetrics = "metrics"
	// KeyPrefixFetched is the prefix for fetched-items counters
	KeyPrefixFetched = "fetched"
	// KeyPrefixDegraded is the prefix for degraded counters
	KeyPrefixDegraded = "degraded"
	// KeyPrefixFallback is the prefix for fallback-served counters
	KeyPrefixFallback = "fallback"
	// KeyLastAggregation is the Redis key for the last aggregation timestamp
	KeyLastAggregation = "metrics:last_aggregation"
	// CounterTTLDays is the TTL in days for counters
	CounterTTLDays = 30
)

// RedisKeys builds metrics keys consistently.
type RedisKeys struct {
	prefix string
}

// NewRedisKeys creates a new RedisKeys instance
func NewRedisKeys(prefix string) *RedisKeys {
	return &RedisKeys{prefix: prefix}
}

// Fetched returns the fetched-items counter key for a category
func (k *RedisKeys) Fetched(category string) string {
	return fmt.Sprintf("%s:%s:%s", k.prefix, KeyPrefixFetched, category)
}

// Degraded returns the degraded counter key for a category
func (k *RedisKeys) Degraded(category string) string {
	return fmt.Sprintf("%s:%s:%s", k.prefix, KeyPrefixDegraded, category)
}

// Fallback returns the fallback-served counter key for a category
func (k *RedisKeys) Fallback(category string) string {
	return fmt.Sprintf("%s:%s:%s", k.prefix, KeyPrefixFallback, category)
}
