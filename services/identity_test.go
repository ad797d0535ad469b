package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("appSession")
		if err != nil || cookie.Value != "good" {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"sub": "auth0|alice"})
	})
	mux.HandleFunc("/api/user/roles", func(w http.ResponseWriter, r *http.Request) {
		roles := []map[string]string{{"name": "customer"}}
		if r.URL.Query().Get("userId") == "auth0|alice" {
			roles = append(roles, map[string]string{"name": "admin"})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"roles": roles})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/comments", nil)
	if value != "" {
		r.AddCookie(&http.Cookie{Name: "appSession", Value: value})
	}
	return r
}

func TestCookieRelay(t *testing.T) {
	srv := newAuthServer(t)
	relay := NewCookieRelay(srv.URL, "appSession")

	t.Run("valid session", func(t *testing.T) {
		identity := relay.Resolve(requestWithCookie("good"))
		require.NotNil(t, identity)
		assert.Equal(t, "auth0|alice", identity.UserID)
		assert.True(t, relay.IsAdmin(context.Background(), identity))
	})

	t.Run("rejected session", func(t *testing.T) {
		assert.Nil(t, relay.Resolve(requestWithCookie("bad")))
	})

	t.Run("no cookie", func(t *testing.T) {
		assert.Nil(t, relay.Resolve(requestWithCookie("")))
	})

	t.Run("non admin", func(t *testing.T) {
		assert.False(t, relay.IsAdmin(context.Background(), &Identity{UserID: "auth0|bob"}))
		assert.False(t, relay.IsAdmin(context.Background(), nil))
	})
}

func TestCookieRelayFailsClosed(t *testing.T) {
	srv := newAuthServer(t)
	relay := NewCookieRelay(srv.URL, "appSession")
	srv.Close()

	assert.Nil(t, relay.Resolve(requestWithCookie("good")))
	assert.False(t, relay.IsAdmin(context.Background(), &Identity{UserID: "auth0|alice"}))
}

func signed(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func bearer(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/comments", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestJWTResolver(t *testing.T) {
	resolver := NewJWTResolver("s3cret")
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("admin token", func(t *testing.T) {
		token := signed(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "role": "admin", "exp": exp})
		identity := resolver.Resolve(bearer(token))
		require.NotNil(t, identity)
		assert.Equal(t, "u1", identity.UserID)
		assert.True(t, resolver.IsAdmin(context.Background(), identity))
	})

	t.Run("customer token", func(t *testing.T) {
		token := signed(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u2", "exp": exp})
		identity := resolver.Resolve(bearer(token))
		require.NotNil(t, identity)
		assert.False(t, resolver.IsAdmin(context.Background(), identity))
	})

	t.Run("rejected tokens", func(t *testing.T) {
		for name, token := range map[string]string{
			"wrong secret": signed(t, "other", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp}),
			"wrong method": signed(t, "s3cret", jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u1", "exp": exp}),
			"expired":      signed(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()}),
			"no subject":   signed(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp}),
			"garbage":      "not-a-token",
		} {
			assert.Nil(t, resolver.Resolve(bearer(token)), name)
		}
	})

	t.Run("no header", func(t *testing.T) {
		assert.Nil(t, resolver.Resolve(httptest.NewRequest(http.MethodGet, "/", nil)))
	})
}

type fixedResolver struct {
	identity *Identity
	admin    bool
}

func (f fixedResolver) Resolve(*http.Request) *Identity { return f.identity }

func (f fixedResolver) IsAdmin(context.Context, *Identity) bool { return f.admin }

func TestChainResolver(t *testing.T) {
	_, err := NewChainResolver()
	assert.ErrorIs(t, err, ErrNoResolvers)

	chain, err := NewChainResolver(
		fixedResolver{},
		fixedResolver{identity: &Identity{UserID: "second"}, admin: true},
		fixedResolver{identity: &Identity{UserID: "third"}},
	)
	require.NoError(t, err)

	identity := chain.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, identity)
	assert.Equal(t, "second", identity.UserID)
	assert.True(t, chain.IsAdmin(context.Background(), identity))

	none, err := NewChainResolver(fixedResolver{})
	require.NoError(t, err)
	assert.Nil(t, none.Resolve(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.False(t, none.IsAdmin(context.Background(), &Identity{UserID: "x"}))
}
