// Package page holds the page controllers: each owns one route, loads its
// resources from the backend (independent fetches run concurrently), joins
// them by id and renders an HTML shell. Every mutation redirects back into
// a full page reload. State is never patched incrementally, so the
// displayed data always lags the backend by one reload.
package page

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/backend"
	"github.com/coursedesk/coursedesk-panel/internal/middleware"
	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/router"
	"github.com/coursedesk/coursedesk-panel/internal/service"
	"github.com/coursedesk/coursedesk-panel/internal/session"
)

// Pages wires every page controller and its form actions.
type Pages struct {
	auth    *service.AuthService
	api     *backend.Client
	flashes *session.Flashes
	log     zerolog.Logger
}

// New creates the page controllers.
func New(auth *service.AuthService, api *backend.Client, flashes *session.Flashes, log zerolog.Logger) *Pages {
	return &Pages{
		auth:    auth,
		api:     api,
		flashes: flashes,
		log:     log.With().Str("component", "pages").Logger(),
	}
}

// Register mounts the page routes on the dispatcher and the form actions
// on the engine. Route table and gating mirror the panel's contract:
// dashboard/users/courses are admin-only, public/my-courses need a login,
// everything else is open.
func (p *Pages) Register(r *router.Router, engine *gin.Engine) {
	r.AddRoute("/", p.Root)
	r.AddRoute("/login", p.LoginPage)
	r.AddRoute("/register", p.RegisterPage)
	r.AddRoute("/dashboard", p.requireAdmin(p.DashboardPage))
	r.AddRoute("/users", p.requireAdmin(p.UsersPage))
	r.AddRoute("/courses", p.requireAdmin(p.CoursesPage))
	r.AddRoute("/public", p.requireAuth(p.PublicPage))
	r.AddRoute("/my-courses", p.requireAuth(p.MyCoursesPage))

	engine.POST("/login", p.LoginSubmit)
	engine.POST("/register", p.RegisterSubmit)
	engine.POST("/logout", p.Logout)

	admin := engine.Group("/", middleware.RequireAdmin(p.auth))
	{
		admin.POST("/users", p.CreateUser)
		admin.POST("/users/:id/update", p.UpdateUser)
		admin.POST("/users/:id/delete", p.DeleteUser)
		admin.POST("/courses", p.CreateCourse)
		admin.POST("/courses/:id/update", p.UpdateCourse)
		admin.POST("/courses/:id/delete", p.DeleteCourse)
	}

	authed := engine.Group("/", middleware.RequireAuth(p.auth))
	{
		authed.POST("/enrollments", p.Enroll)
		authed.POST("/enrollments/:id/delete", p.Unenroll)
	}
}

// Root sends a logged-in user to their home page and shows the login page
// to everyone else.
func (p *Pages) Root(c *gin.Context) {
	if user, ok := p.auth.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, homePath(user.Role))
		return
	}
	p.renderLogin(c, loginView{})
}

// homePath is where a freshly authenticated user lands.
func homePath(role model.Role) string {
	if role == model.RoleAdmin {
		return "/dashboard"
	}
	return "/public"
}

// requireAdmin gates a page behind the admin role.
func (p *Pages) requireAdmin(h router.HandlerFunc) router.HandlerFunc {
	return func(c *gin.Context) {
		if !p.auth.IsAdmin(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h(c)
	}
}

// requireAuth gates a page behind any login.
func (p *Pages) requireAuth(h router.HandlerFunc) router.HandlerFunc {
	return func(c *gin.Context) {
		if !p.auth.IsAuthenticated(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h(c)
	}
}

// pathID parses the :id segment of a mutation route.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// redirectBack sends the browser to the form's declared return page,
// falling back to the given default. Only local paths are honored: a
// "//host" prefix is a protocol-relative external URL, not a local path.
func (p *Pages) redirectBack(c *gin.Context, fallback string) {
	target := c.PostForm("return")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = fallback
	}
	c.Redirect(http.StatusSeeOther, target)
}
