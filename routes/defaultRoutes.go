package routes

import (
	"net/http"

	"github.com/Kariqs/storefront-api/controllers"
	"github.com/gin-gonic/gin"
)

// DefaultRoutes registers the index, health and metrics endpoints.
func DefaultRoutes(server *gin.Engine, c *controllers.Controller, metrics http.Handler) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", c.Health)
	if metrics != nil {
		server.GET("/metrics", gin.WrapH(metrics))
	}
}
