// Package models defines the content, preference and favorite types shared
// across the aggregator service.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Category identifies a content category a user can subscribe to.
type Category string

// Supported content categories.
const (
	CategoryNews          Category = "news"
	CategoryMovies        Category = "movies"
	CategoryMusic         Category = "music"
	CategoryTechnology    Category = "technology"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
)

// AllCategories lists every supported category in a stable order.
func AllCategories() []Category {
	return []Category{
		CategoryNews,
		CategoryMovies,
		CategoryMusic,
		CategoryTechnology,
		CategorySports,
		CategoryEntertainment,
	}
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryNews, CategoryMovies, CategoryMusic,
		CategoryTechnology, CategorySports, CategoryEntertainment:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a string into a Category, or returns
// ErrInvalidCategory when the value is not a supported category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// ContentItem is the unified record every provider adapter produces.
// Items are constructed fresh on each aggregation call and never mutated
// after construction.
type ContentItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	URL         string    `json:"url"`
	Category    Category  `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
}

// contentIDHashLen is the number of hex characters kept from the digest.
const contentIDHashLen = 12

// ContentID derives a stable item id from the category, title and URL.
// Providers without stable upstream ids use this so that the same item
// fetched twice gets the same id.
func ContentID(category Category, title, url string) string {
	sum := sha256.Sum256([]byte(string(category) + "|" + title + "|" + url))
	return string(category) + "-" + hex.EncodeToString(sum[:])[:contentIDHashLen]
}
