// Package router dispatches page GETs through an exact-match path→handler
// map. Form POSTs are registered directly on the Gin engine; this router
// only owns page navigation.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandlerFunc renders a page for the current request.
type HandlerFunc func(c *gin.Context)

// Router maps exact paths to page handlers. There is no pattern or segment
// matching: a path either has a handler or falls back to "/".
type Router struct {
	routes map[string]HandlerFunc
	log    zerolog.Logger
}

// New creates an empty Router.
func New(log zerolog.Logger) *Router {
	return &Router{
		routes: make(map[string]HandlerFunc),
		log:    log.With().Str("component", "router").Logger(),
	}
}

// AddRoute registers a handler for an exact path. Re-registering a path
// silently overwrites the previous handler.
func (r *Router) AddRoute(path string, handler HandlerFunc) {
	r.routes[path] = handler
}

// Navigate rewrites the request to path and dispatches immediately, an
// internal forward with no client round trip. Dispatch is synchronous and
// re-entrant: a handler calling Navigate recurses rather than queues,
// which is fine because page handlers are small and idempotent.
func (r *Router) Navigate(c *gin.Context, path string) {
	c.Request.URL.Path = path
	r.HandleRouteChange(c)
}

// HandleRouteChange looks up the current path exactly. An unregistered
// path falls back to "/"; if "/" itself has no handler the dispatch
// silently no-ops.
func (r *Router) HandleRouteChange(c *gin.Context) {
	path := c.Request.URL.Path

	if handler, ok := r.routes[path]; ok {
		handler(c)
		return
	}

	if path == "/" {
		return
	}

	r.log.Debug().Str("path", path).Msg("unregistered path, falling back to /")
	r.Navigate(c, "/")
}

// Start mounts the dispatcher on the engine. Every GET that no explicit
// route claims flows through HandleRouteChange; browser back/forward
// arrives as fresh GETs and needs no extra wiring.
func (r *Router) Start(engine *gin.Engine) {
	engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		r.HandleRouteChange(c)
	})
}
