package routes

import (
	"github.com/Kariqs/storefront-api/controllers"
	"github.com/gin-gonic/gin"
)

// ProductRoutes registers the product endpoints. cache wraps the read routes.
func ProductRoutes(server *gin.Engine, c *controllers.Controller, cache gin.HandlerFunc) {
	products := server.Group("/products")
	{
		products.GET("", cache, c.GetProducts)
		products.GET("/ids", cache, c.GetProductsByIDs)
		products.GET("/sku", c.CheckSKU)
		products.GET("/search", c.SearchProducts)
		products.GET("/search/:name", cache, c.SearchProducts)
		products.GET("/:id", cache, c.GetProduct)
		products.POST("/upload-img", c.UploadProductImage)
		products.DELETE("/upload-img", c.DeleteProductImage)
	}
}
