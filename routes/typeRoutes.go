package routes

import (
	"github.com/Kariqs/storefront-api/controllers"
	"github.com/gin-gonic/gin"
)

func TypeRoutes(server *gin.Engine, c *controllers.Controller) {
	server.GET("/types", c.GetTypes)
	server.GET("/types/:id", c.GetType)
}
