package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Storefront API.

PRODUCTS
- GET "/products" - All products with thumbnail, active discount and average rating
- GET "/products/{id}" - One product with images, types, tags and comments
- GET "/products/ids?ids=1,2,3" - Products by id list
- GET "/products/search/{name}" - Products whose name contains {name}
- GET "/products/sku?sku=..." - Whether a SKU exists
- POST "/products/upload-img" - Attach a hosted image to a product by SKU
- DELETE "/products/upload-img?imageId=..." - Remove a product image

CART
- GET "/cart?user_identifier=..." - Cart items
- POST "/cart" - Add an item
- PATCH "/cart" - Change an item's quantity
- DELETE "/cart" - Remove one item or clear the cart

FAVORITES
- GET "/favorites?user_identifier=..." - Favorite products
- POST "/favorites" - Add a favorite
- DELETE "/favorites" - Remove one favorite or all of them

COMMENTS
- GET "/comments?productId=..." - Comments, newest first
- POST "/comments" - Add a comment (signed in)
- PATCH "/comments" - Edit your comment
- DELETE "/comments?id=..." - Delete your comment (admins may delete any)

TYPES
- GET "/types" - All product types
- GET "/types/{id}" - One product type`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// Health reports whether the database answers.
func (c *Controller) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.Ping(pingCtx); err != nil {
		respondWithError(ctx, http.StatusServiceUnavailable, "database unavailable", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
