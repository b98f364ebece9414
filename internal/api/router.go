// Package api exposes the aggregation pipeline and the preference and
// favorite stores over HTTP.
package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/pulsefeed/aggregator/internal/aggregator"
	"github.com/pulsefeed/aggregator/internal/config"
	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/metrics"
	"github.com/pulsefeed/aggregator/internal/models"
)

// Aggregation is the feed-building boundary consumed by the handlers.
type Aggregation interface {
	Aggregate(ctx context.Context, req aggregator.Request) *aggregator.Result
}

// PreferenceStore persists user category selections.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (*models.Preference, error)
	Upsert(ctx context.Context, userID string, categories []models.Category) (*models.Preference, error)
}

// FavoriteStore persists saved content items.
type FavoriteStore interface {
	List(ctx context.Context, userID string) ([]models.Favorite, error)
	Create(ctx context.Context, userID string, req *models.FavoriteCreateRequest) (*models.Favorite, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// StatsSource reads aggregation counters for the stats endpoint.
type StatsSource interface {
	GetStats(ctx context.Context, categories []string) (*metrics.Stats, error)
}

// Pinger is the health-check slice of a database connection.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Router holds the API dependencies.
type Router struct {
	aggregation Aggregation
	preferences PreferenceStore
	favorites   FavoriteStore
	stats       StatsSource
	db          Pinger
	redisClient redis.UniversalClient
	cfg         *config.Config
	logger      logger.Logger
	version     string
}

// Deps bundles the dependencies for NewRouter.
type Deps struct {
	Aggregation Aggregation
	Preferences PreferenceStore
	Favorites   FavoriteStore
	Stats       StatsSource
	DB          Pinger
	RedisClient redis.UniversalClient
	Config      *config.Config
	Logger      logger.Logger
	Version     string
}

// NewRouter creates a new API router.
func NewRouter(deps Deps) *Router {
	return &Router{
		aggregation: deps.Aggregation,
		preferences: deps.Preferences,
		favorites:   deps.Favorites,
		stats:       deps.Stats,
		db:          deps.DB,
		redisClient: deps.RedisClient,
		cfg:         deps.Config,
		logger:      deps.Logger,
		version:     deps.Version,
	}
}

// SetupRoutes builds the gin engine with middleware and all routes.
func (r *Router) SetupRoutes() *gin.Engine {
	if !r.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(r.cfg.Server.CORSOrigins))
	router.Use(prometheusMiddleware())

	router.GET("/health", r.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	v1.GET("/feed", r.getFeed)
	v1.GET("/stats", r.getStats)

	users := v1.Group("/users/:userId")
	users.GET("/feed", r.getUserFeed)
	users.GET("/preferences", r.getPreferences)
	users.PUT("/preferences", r.updatePreferences)
	users.GET("/favorites", r.listFavorites)
	users.POST("/favorites", r.createFavorite)
	users.DELETE("/favorites/:id", r.deleteFavorite)

	return router
}
