package controllers

import (
	"net/http"
	"time"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/utils"
	"github.com/gin-gonic/gin"
)

type favoriteView struct {
	ID             uint              `json:"id"`
	UserIdentifier string            `json:"user_identifier"`
	ProductID      uint              `json:"product_id"`
	Product        utils.ProductView `json:"product"`
}

func formatFavorite(item models.FavoriteItem, now time.Time) favoriteView {
	return favoriteView{
		ID:             item.ID,
		UserIdentifier: item.UserIdentifier,
		ProductID:      item.ProductID,
		Product:        utils.FormatProduct(item.Product, nil, now),
	}
}

// GetFavorites handles GET /favorites?user_identifier=.
func (c *Controller) GetFavorites(ctx *gin.Context) {
	user := ctx.Query("user_identifier")
	if user == "" {
		respondWithError(ctx, http.StatusBadRequest, "user_identifier is required", nil)
		return
	}

	items, err := c.store.ListFavorites(ctx.Request.Context(), user)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error fetching favorites", err)
		return
	}

	now := c.now()
	views := make([]favoriteView, 0, len(items))
	for _, item := range items {
		views = append(views, formatFavorite(item, now))
	}
	sendJSONResponse(ctx, http.StatusOK, views)
}

type createFavoriteRequest struct {
	UserIdentifier string `json:"user_identifier" binding:"required"`
	ProductID      uint   `json:"product_id" binding:"required"`
}

// CreateFavorite handles POST /favorites. Adding the same product twice
// creates two rows.
func (c *Controller) CreateFavorite(ctx *gin.Context) {
	var req createFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "user_identifier and product_id are required", nil)
		return
	}

	item := models.FavoriteItem{UserIdentifier: req.UserIdentifier, ProductID: req.ProductID}
	if err := c.store.CreateFavorite(ctx.Request.Context(), &item); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error adding favorite", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, formatFavorite(item, c.now()))
}

// DeleteFavorite handles DELETE /favorites with either {favoriteId} or
// {user_identifier}.
func (c *Controller) DeleteFavorite(ctx *gin.Context) {
	req, err := bindDeleteRequest(ctx, "favoriteId")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Either favoriteId or user_identifier is required", nil)
		return
	}

	switch r := req.(type) {
	case deleteOne:
		if err := c.store.DeleteFavorite(ctx.Request.Context(), r.id); err != nil {
			respondStoreError(ctx, err, "Favorite not found", "Error deleting favorite")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Favorite deleted"})
	case deleteAllForUser:
		removed, err := c.store.ClearFavorites(ctx.Request.Context(), r.userIdentifier)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Error clearing favorites", err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Favorites cleared", "deleted": removed})
	}
}
