package controllers

import (
	"net/http"
	"time"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/utils"
	"github.com/gin-gonic/gin"
)

type cartItemView struct {
	ID             uint              `json:"id"`
	UserIdentifier string            `json:"user_identifier"`
	ProductID      uint              `json:"product_id"`
	Quantity       int               `json:"quantity"`
	Product        utils.ProductView `json:"product"`
}

func formatCartItem(item models.CartItem, now time.Time) cartItemView {
	return cartItemView{
		ID:             item.ID,
		UserIdentifier: item.UserIdentifier,
		ProductID:      item.ProductID,
		Quantity:       item.Quantity,
		Product:        utils.FormatProduct(item.Product, nil, now),
	}
}

// GetCart handles GET /cart?user_identifier=.
func (c *Controller) GetCart(ctx *gin.Context) {
	user := ctx.Query("user_identifier")
	if user == "" {
		respondWithError(ctx, http.StatusBadRequest, "user_identifier is required", nil)
		return
	}

	items, err := c.store.ListCartItems(ctx.Request.Context(), user)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error fetching cart items", err)
		return
	}

	now := c.now()
	views := make([]cartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, formatCartItem(item, now))
	}
	sendJSONResponse(ctx, http.StatusOK, views)
}

type createCartItemRequest struct {
	UserIdentifier string `json:"user_identifier" binding:"required"`
	ProductID      uint   `json:"product_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
}

// CreateCartItem handles POST /cart.
func (c *Controller) CreateCartItem(ctx *gin.Context) {
	var req createCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "user_identifier, product_id, and quantity (at least 1) are required", nil)
		return
	}

	item := models.CartItem{
		UserIdentifier: req.UserIdentifier,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
	}
	if err := c.store.CreateCartItem(ctx.Request.Context(), &item); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error adding to cart", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, formatCartItem(item, c.now()))
}

type updateCartItemRequest struct {
	CartItemID uint `json:"cartItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItem handles PATCH /cart.
func (c *Controller) UpdateCartItem(ctx *gin.Context) {
	var req updateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "cartItemId and quantity (at least 1) are required", nil)
		return
	}

	item, err := c.store.UpdateCartItemQuantity(ctx.Request.Context(), req.CartItemID, req.Quantity)
	if err != nil {
		respondStoreError(ctx, err, "Cart item not found", "Error updating cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, formatCartItem(*item, c.now()))
}

// DeleteCart handles DELETE /cart with either {cartItemId} or
// {user_identifier}.
func (c *Controller) DeleteCart(ctx *gin.Context) {
	req, err := bindDeleteRequest(ctx, "cartItemId")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Either cartItemId or user_identifier is required", nil)
		return
	}

	switch r := req.(type) {
	case deleteOne:
		if err := c.store.DeleteCartItem(ctx.Request.Context(), r.id); err != nil {
			respondStoreError(ctx, err, "Cart item not found", "Error deleting cart item")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item deleted"})
	case deleteAllForUser:
		removed, err := c.store.ClearCart(ctx.Request.Context(), r.userIdentifier)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Error clearing cart", err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared", "deleted": removed})
	}
}
