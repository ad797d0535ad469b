package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Kariqs/storefront-api/middlewares"
	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/services"
	"github.com/gin-gonic/gin"
)

// GetComments handles GET /comments?productId=, newest first.
func (c *Controller) GetComments(ctx *gin.Context) {
	raw := ctx.Query("productId")
	if raw == "" {
		respondWithError(ctx, http.StatusBadRequest, "Product ID is required", nil)
		return
	}
	productID, ok := parseID(raw)
	if !ok {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	comments, err := c.store.ListComments(ctx.Request.Context(), productID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch comments", err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	sendJSONResponse(ctx, http.StatusOK, comments)
}

// Ids and ratings arrive either as JSON numbers or numeric strings.
type createCommentRequest struct {
	ProductID json.Number  `json:"product_id"`
	Comment   string       `json:"comment"`
	Rating    *json.Number `json:"rating"`
}

type updateCommentRequest struct {
	ID      json.Number  `json:"id"`
	Comment string       `json:"comment"`
	Rating  *json.Number `json:"rating"`
}

// callerIdentity returns the caller resolved by middlewares.RequireIdentity,
// falling back to the resolver when the middleware was not installed.
func (c *Controller) callerIdentity(ctx *gin.Context) *services.Identity {
	if identity, ok := middlewares.CurrentIdentity(ctx); ok {
		return identity
	}
	return c.identity.Resolve(ctx.Request)
}

// CreateComment handles POST /comments.
func (c *Controller) CreateComment(ctx *gin.Context) {
	identity := c.callerIdentity(ctx)
	if identity == nil {
		respondWithError(ctx, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req createCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Missing required fields", nil)
		return
	}
	productID, ok := parseID(req.ProductID.String())
	if !ok || strings.TrimSpace(req.Comment) == "" || req.Rating == nil {
		respondWithError(ctx, http.StatusBadRequest, "Missing required fields", nil)
		return
	}
	rating, err := req.Rating.Float64()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Rating must be a number", nil)
		return
	}

	comment := models.Comment{
		ProductID:      productID,
		UserIdentifier: identity.UserID,
		Comment:        req.Comment,
		Rating:         rating,
		CreatedAt:      c.now(),
	}
	if err := c.store.CreateComment(ctx.Request.Context(), &comment); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create comment", err)
		return
	}
	c.invalidateProducts(ctx)

	sendJSONResponse(ctx, http.StatusCreated, comment)
}

// UpdateComment handles PATCH /comments. Only the author may edit.
func (c *Controller) UpdateComment(ctx *gin.Context) {
	identity := c.callerIdentity(ctx)
	if identity == nil {
		respondWithError(ctx, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req updateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Comment ID and text are required", nil)
		return
	}
	id, ok := parseID(req.ID.String())
	if !ok || strings.TrimSpace(req.Comment) == "" {
		respondWithError(ctx, http.StatusBadRequest, "Comment ID and text are required", nil)
		return
	}

	existing, err := c.store.FindComment(ctx.Request.Context(), id)
	if err != nil {
		respondStoreError(ctx, err, "Comment not found", "Failed to update comment")
		return
	}
	if existing.UserIdentifier != identity.UserID {
		respondWithError(ctx, http.StatusForbidden, "Not authorized to edit this comment", nil)
		return
	}

	existing.Comment = req.Comment
	if req.Rating != nil {
		rating, err := req.Rating.Float64()
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Rating must be a number", nil)
			return
		}
		existing.Rating = rating
	}
	editedAt := c.now()
	existing.EditedAt = &editedAt

	if err := c.store.UpdateComment(ctx.Request.Context(), existing); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update comment", err)
		return
	}
	c.invalidateProducts(ctx)

	sendJSONResponse(ctx, http.StatusOK, existing)
}

// DeleteComment handles DELETE /comments?id=. The author or an admin may
// delete.
func (c *Controller) DeleteComment(ctx *gin.Context) {
	identity := c.callerIdentity(ctx)
	if identity == nil {
		respondWithError(ctx, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	raw := ctx.Query("id")
	if raw == "" {
		respondWithError(ctx, http.StatusBadRequest, "Comment ID is required", nil)
		return
	}
	id, ok := parseID(raw)
	if !ok {
		respondWithError(ctx, http.StatusBadRequest, "Invalid comment ID", nil)
		return
	}

	existing, err := c.store.FindComment(ctx.Request.Context(), id)
	if err != nil {
		respondStoreError(ctx, err, "Comment not found", "Failed to delete comment")
		return
	}

	isAuthor := existing.UserIdentifier == identity.UserID
	if !isAuthor && !c.identity.IsAdmin(ctx.Request.Context(), identity) {
		respondWithError(ctx, http.StatusForbidden, "Not authorized to delete this comment", nil)
		return
	}

	if err := c.store.DeleteComment(ctx.Request.Context(), id); err != nil {
		respondStoreError(ctx, err, "Comment not found", "Failed to delete comment")
		return
	}
	c.invalidateProducts(ctx)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
