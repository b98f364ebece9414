package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pulsefeed/aggregator/internal/models"
)

const uniqueViolation = "23505"

// FavoriteRepository persists the content items users save from their feed.
type FavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository creates a favorite repository.
func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// List returns the user's favorites, newest first.
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	query := `
		SELECT id, user_id, category, title, description, image_url, url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	favorites := []models.Favorite{}
	if err := r.db.SelectContext(ctx, &favorites, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, nil
}

// Create saves a content item as a favorite. A favorite with the same
// user, title and URL already existing yields ErrAlreadyExists.
func (r *FavoriteRepository) Create(ctx context.Context, userID string, req *models.FavoriteCreateRequest) (*models.Favorite, error) {
	favorite := &models.Favorite{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		URL:         req.URL,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO favorites (id, user_id, category, title, description, image_url, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		favorite.ID, favorite.UserID, favorite.Category, favorite.Title,
		favorite.Description, favorite.ImageURL, favorite.URL, favorite.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, models.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	return favorite, nil
}

// Delete removes a favorite owned by the user.
func (r *FavoriteRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM favorites WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}
