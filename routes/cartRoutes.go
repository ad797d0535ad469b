package routes

import (
	"github.com/Kariqs/storefront-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, c *controllers.Controller) {
	server.GET("/cart", c.GetCart)
	server.POST("/cart", c.CreateCartItem)
	server.PATCH("/cart", c.UpdateCartItem)
	server.DELETE("/cart", c.DeleteCart)
}
