package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed/aggregator/internal/models"
	"github.com/pulsefeed/aggregator/internal/store"
)

func TestFavoriteRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := store.NewFavoriteRepository(db)

	id := uuid.New()
	createdAt := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "category", "title", "description", "image_url", "url", "created_at"}).
		AddRow(id, "user-1", "movies", "Dune", "Desert epic", "https://example.com/dune.jpg", "https://example.com/dune", createdAt)
	mock.ExpectQuery(`SELECT id, user_id, category`).
		WithArgs("user-1").
		WillReturnRows(rows)

	favorites, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	assert.Equal(t, id, favorites[0].ID)
	assert.Equal(t, models.CategoryMovies, favorites[0].Category)
	assert.Equal(t, "Dune", favorites[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_ListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := store.NewFavoriteRepository(db)

	mock.ExpectQuery(`SELECT id, user_id, category`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "title", "description", "image_url", "url", "created_at"}))

	favorites, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)
}

func TestFavoriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := store.NewFavoriteRepository(db)

	mock.ExpectExec(`INSERT INTO favorites`).
		WithArgs(sqlmock.AnyArg(), "user-1", models.CategoryMusic, "Midnight City - M83",
			"Album: Hurry Up, We're Dreaming", "", "https://open.spotify.com/track/track1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	favorite, err := repo.Create(context.Background(), "user-1", &models.FavoriteCreateRequest{
		Category:    models.CategoryMusic,
		Title:       "Midnight City - M83",
		Description: "Album: Hurry Up, We're Dreaming",
		URL:         "https://open.spotify.com/track/track1",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, favorite.ID)
	assert.Equal(t, "user-1", favorite.UserID)
	assert.False(t, favorite.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := store.NewFavoriteRepository(db)

	mock.ExpectExec(`INSERT INTO favorites`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), "user-1", &models.FavoriteCreateRequest{
		Category: models.CategoryMusic,
		Title:    "Midnight City - M83",
		URL:      "https://open.spotify.com/track/track1",
	})
	require.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestFavoriteRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := store.NewFavoriteRepository(db)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM favorites`).
		WithArgs(id, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "user-1", id)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := store.NewFavoriteRepository(db)

	mock.ExpectExec(`DELETE FROM favorites`).
		WithArgs(sqlmock.AnyArg(), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "user-1", uuid.New())
	require.ErrorIs(t, err, models.ErrNotFound)
}
