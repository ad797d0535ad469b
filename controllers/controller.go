package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Kariqs/storefront-api/services"
	"github.com/Kariqs/storefront-api/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Controller holds the collaborators shared by every handler.
type Controller struct {
	store      store.Store
	identity   services.IdentityResolver
	images     services.ImageHost
	invalidate func(ctx context.Context) error
	now        func() time.Time
}

type Dependencies struct {
	Store    store.Store
	Identity services.IdentityResolver
	Images   services.ImageHost
	// InvalidateProducts drops cached product responses. Optional.
	InvalidateProducts func(ctx context.Context) error
	// Now defaults to time.Now.
	Now func() time.Time
}

func New(deps Dependencies) *Controller {
	c := &Controller{
		store:      deps.Store,
		identity:   deps.Identity,
		images:     deps.Images,
		invalidate: deps.InvalidateProducts,
		now:        deps.Now,
	}
	if c.invalidate == nil {
		c.invalidate = func(context.Context) error { return nil }
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

func (c *Controller) invalidateProducts(ctx *gin.Context) {
	if err := c.invalidate(ctx.Request.Context()); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate product cache")
	}
}

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

// respondWithError writes {"error": message}. The cause, when given, is
// logged and attached to the gin context but never sent to the client.
func respondWithError(ctx *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = ctx.Error(err)
		log.Error().
			Err(err).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Msg(message)
	}
	ctx.JSON(status, gin.H{"error": message})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// respondStoreError maps a store failure to 404 or 500.
func respondStoreError(ctx *gin.Context, err error, notFound, failed string) {
	if isNotFound(err) {
		respondWithError(ctx, http.StatusNotFound, notFound, nil)
		return
	}
	respondWithError(ctx, http.StatusInternalServerError, failed, err)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
