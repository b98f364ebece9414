package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pulsefeed/aggregator/internal/aggregator"
	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/models"
)

// getFeed handles GET /api/v1/feed?categories=a,b&q=&page=&pageSize=
func (r *Router) getFeed(c *gin.Context) {
	raw := c.Query("categories")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categories parameter is required"})
		return
	}

	categories, err := parseCategories(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r.serveFeed(c, categories)
}

// getUserFeed handles GET /api/v1/users/:userId/feed; the category set
// comes from the user's stored preference.
func (r *Router) getUserFeed(c *gin.Context) {
	userID := c.Param("userId")

	preference, err := r.preferences.Get(c.Request.Context(), userID)
	if err != nil {
		r.logger.Error("Failed to load preference for feed",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load preferences"})
		return
	}

	r.serveFeed(c, preference.Categories)
}

// serveFeed runs the aggregation and writes the paginated response.
func (r *Router) serveFeed(c *gin.Context, categories []models.Category) {
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", r.cfg.Aggregation.PageSize)
	searchTerm := c.Query("q")

	result := r.aggregation.Aggregate(c.Request.Context(), aggregator.Request{
		Categories: categories,
		SearchTerm: searchTerm,
		Page:       1,
		PageSize:   pageSize,
	})

	feedRequestsTotal.WithLabelValues(strconv.FormatBool(result.AllDegraded)).Inc()

	c.JSON(http.StatusOK, gin.H{
		"items":        aggregator.Paginate(result.Items, page, pageSize),
		"totalResults": result.TotalResults,
		"degraded":     result.Degraded,
		"allDegraded":  result.AllDegraded,
		"page":         page,
		"pageSize":     pageSize,
	})
}

// parseCategories splits a comma-separated category list, rejecting
// unknown values.
func parseCategories(raw string) ([]models.Category, error) {
	parts := strings.Split(raw, ",")
	categories := make([]models.Category, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		category, err := models.ParseCategory(part)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// intQuery reads a positive integer query parameter, returning def when
// absent or invalid.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
