package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite represents a content item a user saved from their feed.
// The item's fields are copied at save time; favorites do not reference
// live aggregation results.
type Favorite struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	UserID      string    `db:"user_id"      json:"user_id"`
	Category    Category  `db:"category"     json:"category"`
	Title       string    `db:"title"        json:"title"`
	Description string    `db:"description"  json:"description"`
	ImageURL    string    `db:"image_url"    json:"imageUrl"`
	URL         string    `db:"url"          json:"url"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}

// FavoriteCreateRequest represents the request payload for saving a favorite
type FavoriteCreateRequest struct {
	Category    Category `binding:"required"          json:"category"`
	Title       string   `binding:"required,min=1"    json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	URL         string   `json:"url"`
}

// Validate validates the favorite create request
func (r *FavoriteCreateRequest) Validate() error {
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}
