package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pulsefeed/aggregator/internal/models"
)

// PreferenceRepository persists user category selections.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository creates a preference repository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the user's preference. Users without a saved preference get
// the default category set rather than an error, matching the feed's
// first-visit behavior.
func (r *PreferenceRepository) Get(ctx context.Context, userID string) (*models.Preference, error) {
	query := `
		SELECT user_id, categories, updated_at
		FROM preferences
		WHERE user_id = $1
	`

	var row struct {
		UserID     string         `db:"user_id"`
		Categories pq.StringArray `db:"categories"`
		UpdatedAt  time.Time      `db:"updated_at"`
	}

	err := r.db.GetContext(ctx, &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Preference{
			UserID:     userID,
			Categories: models.DefaultCategories(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	categories := make([]models.Category, 0, len(row.Categories))
	for _, raw := range row.Categories {
		c, parseErr := models.ParseCategory(raw)
		if parseErr != nil {
			// Skip values persisted before a category was removed.
			continue
		}
		categories = append(categories, c)
	}

	return &models.Preference{
		UserID:     row.UserID,
		Categories: categories,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

// Upsert replaces the user's category set.
func (r *PreferenceRepository) Upsert(ctx context.Context, userID string, categories []models.Category) (*models.Preference, error) {
	for _, c := range categories {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidCategory, c)
		}
	}

	raw := make(pq.StringArray, 0, len(categories))
	for _, c := range categories {
		raw = append(raw, c.String())
	}

	now := time.Now()
	query := `
		INSERT INTO preferences (user_id, categories, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET categories = EXCLUDED.categories, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, userID, raw, now); err != nil {
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}

	return &models.Preference{
		UserID:     userID,
		Categories: categories,
		UpdatedAt:  now,
	}, nil
}
