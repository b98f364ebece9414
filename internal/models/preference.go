package models

import "time"

// Preference holds the category set a user selected for their feed.
type Preference struct {
	UserID     string     `db:"user_id"    json:"user_id"`
	Categories []Category `json:"categories"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// DefaultCategories is the preference set used for users who have not
// saved one yet.
func DefaultCategories() []Category {
	return []Category{CategoryNews, CategoryTechnology, CategoryEntertainment}
}

// PreferenceUpdateRequest represents the request payload for replacing a
// user's category set
type PreferenceUpdateRequest struct {
	Categories []string `binding:"required,min=1" json:"categories"`
}

// Validate validates the preference update request and returns the parsed
// category set.
func (r *PreferenceUpdateRequest) Validate() ([]Category, error) {
	categories := make([]Category, 0, len(r.Categories))
	seen := make(map[Category]struct{}, len(r.Categories))
	for _, raw := range r.Categories {
		c, err := ParseCategory(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	return categories, nil
}
