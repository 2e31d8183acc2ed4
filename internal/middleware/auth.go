// Package middleware holds the role gates applied to mutation endpoints.
// Page-level gating happens in the page package so guarded pages can
// redirect consistently; these middlewares protect the POST routes that
// bypass the page router.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-panel/internal/service"
)

// RequireAuth redirects to /login when no user is in the session.
func RequireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAuthenticated(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin redirects to /login when the session user is missing or not
// an admin.
func RequireAdmin(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
