package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestHandleRouteChangeDispatchesExactMatch(t *testing.T) {
	r := New(zerolog.Nop())

	var hit string
	r.AddRoute("/login", func(c *gin.Context) { hit = "/login" })
	r.AddRoute("/dashboard", func(c *gin.Context) { hit = "/dashboard" })

	c, _ := testContext(http.MethodGet, "/dashboard")
	r.HandleRouteChange(c)

	assert.Equal(t, "/dashboard", hit)
}

func TestHandleRouteChangeFallsBackToRoot(t *testing.T) {
	r := New(zerolog.Nop())

	var hit string
	r.AddRoute("/", func(c *gin.Context) { hit = c.Request.URL.Path })

	c, _ := testContext(http.MethodGet, "/no/such/page")
	r.HandleRouteChange(c)

	// The fallback is a real forward: the path is rewritten before dispatch.
	assert.Equal(t, "/", hit)
	assert.Equal(t, "/", c.Request.URL.Path)
}

func TestHandleRouteChangeMissingRootIsSilent(t *testing.T) {
	r := New(zerolog.Nop())
	r.AddRoute("/login", func(c *gin.Context) { t.Fatal("should not dispatch") })

	c, w := testContext(http.MethodGet, "/unknown")
	r.HandleRouteChange(c)

	// No handler for "/": dispatch no-ops rather than looping.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddRouteOverwrites(t *testing.T) {
	r := New(zerolog.Nop())

	var hit string
	r.AddRoute("/page", func(c *gin.Context) { hit = "first" })
	r.AddRoute("/page", func(c *gin.Context) { hit = "second" })

	c, _ := testContext(http.MethodGet, "/page")
	r.HandleRouteChange(c)

	assert.Equal(t, "second", hit)
}

func TestNavigateForwardsSynchronously(t *testing.T) {
	r := New(zerolog.Nop())

	var order []string
	r.AddRoute("/a", func(c *gin.Context) {
		order = append(order, "a")
		r.Navigate(c, "/b")
		order = append(order, "a-after")
	})
	r.AddRoute("/b", func(c *gin.Context) { order = append(order, "b") })

	c, _ := testContext(http.MethodGet, "/a")
	r.HandleRouteChange(c)

	assert.Equal(t, []string{"a", "b", "a-after"}, order)
}

func TestStartMountsGetOnlyCatchAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	r := New(zerolog.Nop())
	r.AddRoute("/page", func(c *gin.Context) { c.String(http.StatusOK, "page") })
	r.Start(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "page", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/page", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
