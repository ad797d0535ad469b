package controllers

import (
	"net/http"

	"github.com/Kariqs/storefront-api/models"
	"github.com/gin-gonic/gin"
)

func (c *Controller) GetTypes(ctx *gin.Context) {
	types, err := c.store.ListTypes(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error fetching types", err)
		return
	}
	if types == nil {
		types = []models.Type{}
	}
	sendJSONResponse(ctx, http.StatusOK, types)
}

func (c *Controller) GetType(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		respondWithError(ctx, http.StatusBadRequest, "ID is required", nil)
		return
	}

	t, err := c.store.FindType(ctx.Request.Context(), id)
	if err != nil {
		respondStoreError(ctx, err, "Type not found", "Error fetching type")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, t)
}
