package routes

import (
	"github.com/Kariqs/storefront-api/controllers"
	"github.com/gin-gonic/gin"
)

// CommentRoutes registers the comment endpoints. requireIdentity guards
// every mutation; rateLimit additionally guards creation.
func CommentRoutes(server *gin.Engine, c *controllers.Controller, requireIdentity, rateLimit gin.HandlerFunc) {
	server.GET("/comments", c.GetComments)
	server.POST("/comments", rateLimit, requireIdentity, c.CreateComment)
	server.PATCH("/comments", requireIdentity, c.UpdateComment)
	server.DELETE("/comments", requireIdentity, c.DeleteComment)
}
