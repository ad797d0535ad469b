package middlewares

import (
	"net/http"

	"github.com/Kariqs/storefront-api/services"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireIdentity resolves the caller once and aborts with 401 when the
// identity provider does not recognise them.
func RequireIdentity(resolver services.IdentityResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity := resolver.Resolve(ctx.Request)
		if identity == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireIdentity.
func CurrentIdentity(ctx *gin.Context) (*services.Identity, bool) {
	value, exists := ctx.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*services.Identity)
	return identity, ok && identity != nil
}
