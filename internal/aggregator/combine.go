package aggregator

import (
	"sort"
	"strings"

	"github.com/pulsefeed/aggregator/internal/models"
)

// dedupeKey is the identity used to drop duplicates across providers.
// Items with the same title but different URLs (or vice versa) are
// distinct. Two genuinely different items whose title and URL both
// defaulted will collapse into one; that matches the upstream behavior and
// is deliberate (see DESIGN.md).
type dedupeKey struct {
	title string
	url   string
}

// Combine concatenates the per-category batches, deduplicates on the
// (title, URL) pair keeping the first occurrence, applies the optional
// case-insensitive search filter on title and description, and sorts by
// published time, newest first. The sort is stable: equal timestamps keep
// their input order.
//
// The returned count is the size of the deduplicated, filtered set before
// any pagination the caller applies.
func Combine(batches [][]models.ContentItem, searchTerm string) ([]models.ContentItem, int) {
	seen := make(map[dedupeKey]struct{})
	term := strings.ToLower(searchTerm)

	items := make([]models.ContentItem, 0)
	for _, batch := range batches {
		for _, item := range batch {
			key := dedupeKey{title: item.Title, url: item.URL}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if term != "" &&
				!strings.Contains(strings.ToLower(item.Title), term) &&
				!strings.Contains(strings.ToLower(item.Description), term) {
				continue
			}

			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	return items, len(items)
}

// Paginate returns the page slice of items for a 1-based page number.
// Out-of-range pages return an empty slice.
func Paginate(items []models.ContentItem, page, pageSize int) []models.ContentItem {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []models.ContentItem{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
