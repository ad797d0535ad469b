package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/storefront-api/middlewares"
	"github.com/Kariqs/storefront-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// stubIdentity resolves the X-Test-User header and treats admins as admin.
type stubIdentity struct {
	admins     map[string]bool
	adminCalls int
}

func (s *stubIdentity) Resolve(r *http.Request) *services.Identity {
	user := r.Header.Get("X-Test-User")
	if user == "" {
		return nil
	}
	return &services.Identity{UserID: user}
}

func (s *stubIdentity) IsAdmin(_ context.Context, identity *services.Identity) bool {
	s.adminCalls++
	return identity != nil && s.admins[identity.UserID]
}

type stubImageHost struct {
	deleted []string
	err     error
}

func (h *stubImageHost) ObjectID(location string) (string, bool) {
	return services.NewCallbackHost("http://unused").ObjectID(location)
}

func (h *stubImageHost) Delete(_ context.Context, objectID string) error {
	h.deleted = append(h.deleted, objectID)
	return h.err
}

type testEnv struct {
	store       *fakeStore
	identity    *stubIdentity
	images      *stubImageHost
	invalidated int
	router      *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		store:    newFakeStore(),
		identity: &stubIdentity{admins: map[string]bool{}},
		images:   &stubImageHost{},
	}
	c := New(Dependencies{
		Store:    env.store,
		Identity: env.identity,
		Images:   env.images,
		InvalidateProducts: func(context.Context) error {
			env.invalidated++
			return nil
		},
		Now: func() time.Time { return fixedNow },
	})

	r := gin.New()
	r.GET("/products", c.GetProducts)
	r.GET("/products/ids", c.GetProductsByIDs)
	r.GET("/products/sku", c.CheckSKU)
	r.GET("/products/search", c.SearchProducts)
	r.GET("/products/search/:name", c.SearchProducts)
	r.GET("/products/:id", c.GetProduct)
	r.POST("/products/upload-img", c.UploadProductImage)
	r.DELETE("/products/upload-img", c.DeleteProductImage)

	r.GET("/cart", c.GetCart)
	r.POST("/cart", c.CreateCartItem)
	r.PATCH("/cart", c.UpdateCartItem)
	r.DELETE("/cart", c.DeleteCart)

	r.GET("/favorites", c.GetFavorites)
	r.POST("/favorites", c.CreateFavorite)
	r.DELETE("/favorites", c.DeleteFavorite)

	requireIdentity := middlewares.RequireIdentity(env.identity)
	r.GET("/comments", c.GetComments)
	r.POST("/comments", requireIdentity, c.CreateComment)
	r.PATCH("/comments", requireIdentity, c.UpdateComment)
	r.DELETE("/comments", requireIdentity, c.DeleteComment)

	r.GET("/types", c.GetTypes)
	r.GET("/types/:id", c.GetType)
	r.GET("/health", c.Health)

	env.router = r
	return env
}

type request struct {
	method string
	path   string
	body   any
	user   string
}

func (e *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch b := req.body.(type) {
	case nil:
	case string:
		body.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&body).Encode(b))
	}

	httpReq := httptest.NewRequest(req.method, req.path, &body)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.user != "" {
		httpReq.Header.Set("X-Test-User", req.user)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httpReq)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

var errHostDown = errors.New("host down")
