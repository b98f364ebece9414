package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/models"
)

const healthCheckTimeout = 2 * time.Second

// getPreferences handles GET /api/v1/users/:userId/preferences
func (r *Router) getPreferences(c *gin.Context) {
	userID := c.Param("userId")

	preference, err := r.preferences.Get(c.Request.Context(), userID)
	if err != nil {
		r.logger.Error("Failed to get preferences",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get preferences"})
		return
	}

	c.JSON(http.StatusOK, preference)
}

// updatePreferences handles PUT /api/v1/users/:userId/preferences
func (r *Router) updatePreferences(c *gin.Context) {
	userID := c.Param("userId")

	var req models.PreferenceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, err := req.Validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preference, err := r.preferences.Upsert(c.Request.Context(), userID, categories)
	if err != nil {
		r.logger.Error("Failed to update preferences",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, preference)
}

// listFavorites handles GET /api/v1/users/:userId/favorites
func (r *Router) listFavorites(c *gin.Context) {
	userID := c.Param("userId")

	favorites, err := r.favorites.List(c.Request.Context(), userID)
	if err != nil {
		r.logger.Error("Failed to list favorites",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// createFavorite handles POST /api/v1/users/:userId/favorites
func (r *Router) createFavorite(c *gin.Context) {
	userID := c.Param("userId")

	var req models.FavoriteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, err := r.favorites.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Favorite already exists"})
			return
		}
		r.logger.Error("Failed to create favorite",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// deleteFavorite handles DELETE /api/v1/users/:userId/favorites/:id
func (r *Router) deleteFavorite(c *gin.Context) {
	userID := c.Param("userId")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidUUID.Error()})
		return
	}

	if err := r.favorites.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
			return
		}
		r.logger.Error("Failed to delete favorite",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
		return
	}

	c.Status(http.StatusNoContent)
}

// getStats handles GET /api/v1/stats
func (r *Router) getStats(c *gin.Context) {
	if r.stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stats not available"})
		return
	}

	categories := make([]string, 0, len(models.AllCategories()))
	for _, category := range models.AllCategories() {
		categories = append(categories, category.String())
	}

	stats, err := r.stats.GetStats(c.Request.Context(), categories)
	if err != nil {
		r.logger.Error("Failed to get stats", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// healthCheck handles GET /health
func (r *Router) healthCheck(c *gin.Context) {
	health := gin.H{
		"status":  "healthy",
		"service": "aggregator",
		"version": r.version,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	dbConnected := true
	if r.db == nil || r.db.PingContext(ctx) != nil {
		dbConnected = false
		health["status"] = "degraded"
	}
	health["database"] = gin.H{"connected": dbConnected}

	redisConnected := true
	if r.redisClient == nil || r.redisClient.Ping(ctx).Err() != nil {
		redisConnected = false
		if health["status"] == "healthy" {
			health["status"] = "degraded"
		}
	}
	health["redis"] = gin.H{"connected": redisConnected}

	c.JSON(http.StatusOK, health)
}
