package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

// WebSocketHandler is the upgrade endpoint mounted at /ws/games/:id
type WebSocketHandler interface {
	HandleWebSocket(c *gin.Context)
}

func NewRouter(games *GameHandler, ws WebSocketHandler, allowedOrigins []string, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins, logger))

	router.GET("/healthz", games.Health)

	api := router.Group("/api/games")
	{
		api.POST("", games.Create)
		api.GET("/:id", games.Get)
		api.POST("/:id/drop", games.Drop)
		api.POST("/:id/reset", games.Reset)
		api.DELETE("/:id", games.Delete)
	}

	if ws != nil {
		router.GET("/ws/games/:id", ws.HandleWebSocket)
	}

	return router
}
