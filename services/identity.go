package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const roleAdmin = "admin"

// Identity is the caller as reported by the identity provider.
type Identity struct {
	UserID string
	Roles  []string
}

func (i *Identity) hasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IdentityResolver resolves the caller of a request. Resolve returns nil when
// the request carries no usable credential or the provider cannot be
// reached; IsAdmin returns false on any failure.
type IdentityResolver interface {
	Resolve(r *http.Request) *Identity
	IsAdmin(ctx context.Context, identity *Identity) bool
}

// CookieRelay forwards the session cookie to the identity provider.
type CookieRelay struct {
	client     *resty.Client
	cookieName string
}

func NewCookieRelay(baseURL, cookieName string) *CookieRelay {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json")
	return &CookieRelay{client: client, cookieName: cookieName}
}

type meResponse struct {
	Sub string `json:"sub"`
}

type rolesResponse struct {
	Roles []struct {
		Name string `json:"name"`
	} `json:"roles"`
}

func (c *CookieRelay) Resolve(r *http.Request) *Identity {
	cookie, err := r.Cookie(c.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var me meResponse
	resp, err := c.client.R().
		SetContext(r.Context()).
		SetHeader("Cookie", fmt.Sprintf("%s=%s", c.cookieName, cookie.Value)).
		SetResult(&me).
		Get("/api/auth/me")
	if err != nil {
		log.Warn().Err(err).Msg("identity relay request failed")
		return nil
	}
	if resp.IsError() || me.Sub == "" {
		log.Debug().Int("status", resp.StatusCode()).Msg("identity relay returned no user")
		return nil
	}

	return &Identity{UserID: me.Sub}
}

func (c *CookieRelay) IsAdmin(ctx context.Context, identity *Identity) bool {
	if identity == nil {
		return false
	}

	var roles rolesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("userId", identity.UserID).
		SetResult(&roles).
		Get("/api/user/roles")
	if err != nil || resp.IsError() {
		log.Warn().Err(err).Str("user", identity.UserID).Msg("error checking admin status")
		return false
	}

	for _, role := range roles.Roles {
		if role.Name == roleAdmin {
			return true
		}
	}
	return false
}

// JWTResolver accepts HS256 bearer tokens carrying sub and role claims.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (j *JWTResolver) Resolve(r *http.Request) *Identity {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		log.Debug().Err(err).Msg("rejected bearer token")
		return nil
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil
	}

	identity := &Identity{UserID: sub}
	if role, ok := claims["role"].(string); ok && role != "" {
		identity.Roles = []string{role}
	}
	return identity
}

func (j *JWTResolver) IsAdmin(_ context.Context, identity *Identity) bool {
	return identity != nil && identity.hasRole(roleAdmin)
}

// ChainResolver asks each resolver in turn. The caller is an admin when any
// resolver says so.
type ChainResolver struct {
	resolvers []IdentityResolver
}

// ErrNoResolvers is returned by NewChainResolver when nothing is configured.
var ErrNoResolvers = errors.New("no identity resolver configured")

func NewChainResolver(resolvers ...IdentityResolver) (*ChainResolver, error) {
	if len(resolvers) == 0 {
		return nil, ErrNoResolvers
	}
	return &ChainResolver{resolvers: resolvers}, nil
}

func (c *ChainResolver) Resolve(r *http.Request) *Identity {
	for _, resolver := range c.resolvers {
		if identity := resolver.Resolve(r); identity != nil {
			return identity
		}
	}
	return nil
}

func (c *ChainResolver) IsAdmin(ctx context.Context, identity *Identity) bool {
	for _, resolver := range c.resolvers {
		if resolver.IsAdmin(ctx, identity) {
			return true
		}
	}
	return false
}
