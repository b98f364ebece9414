package providers

import (
	"context"
	"strings"

	"github.com/pulsefeed/aggregator/internal/models"
)

// StaticProvider serves a fixed dataset for one category. The orchestrator
// registers one per category as the fallback consulted when the live
// provider fails, so degraded categories still render content instead of
// an empty section.
type StaticProvider struct {
	category models.Category
	items    []models.ContentItem
}

// NewStaticProvider creates a fallback provider over the given items.
// Items whose category differs from category are dropped.
func NewStaticProvider(category models.Category, items []models.ContentItem) *StaticProvider {
	kept := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			kept = append(kept, item)
		}
	}
	return &StaticProvider{category: category, items: kept}
}

// Category returns the category this provider serves.
func (p *StaticProvider) Category() models.Category {
	return p.category
}

// Fetch returns the static dataset, honoring the search term and page size.
// It never fails.
func (p *StaticProvider) Fetch(_ context.Context, q Query) ([]models.ContentItem, error) {
	items := make([]models.ContentItem, 0, len(p.items))
	term := strings.ToLower(q.SearchTerm)
	for _, item := range p.items {
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Title), term) &&
			!strings.Contains(strings.ToLower(item.Description), term) {
			continue
		}
		items = append(items, item)
	}
	if q.PageSize > 0 && len(items) > q.PageSize {
		items = items[:q.PageSize]
	}
	return items, nil
}
