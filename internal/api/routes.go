package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/bankshot/backend/internal/api/handlers"
	"github.com/bankshot/backend/internal/config"
	"github.com/bankshot/backend/internal/middleware"
	"github.com/bankshot/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Stateless one-shot prediction
		v1.POST("/predict", handlers.PredictOnce())

		// Overlay sessions
		session := v1.Group("/session")
		{
			session.POST("", handlers.CreateSession(rdb, cfg))
			session.GET("/:token", handlers.GetSession(rdb, cfg))
			session.DELETE("/:token", handlers.DeleteSession(rdb, cfg))
		}

		// Live overlay stream (token arrives as a query param so the
		// desktop shells can use a plain WebSocket URL)
		v1.GET("/overlay/ws", ws.HandleWebSocket)

		// Saved table profiles
		prof := v1.Group("/profiles")
		{
			prof.GET("", handlers.ListProfiles(db))
			prof.POST("", handlers.CreateProfile(db))
			prof.GET("/:id", handlers.GetProfile(db))
			prof.DELETE("/:id", handlers.DeleteProfile(db, cfg))
		}
	}
}
