package routes

import (
	"github.com/Kariqs/storefront-api/controllers"
	"github.com/gin-gonic/gin"
)

func FavoriteRoutes(server *gin.Engine, c *controllers.Controller) {
	server.GET("/favorites", c.GetFavorites)
	server.POST("/favorites", c.CreateFavorite)
	server.DELETE("/favorites", c.DeleteFavorite)
}
