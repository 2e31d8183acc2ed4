// Package session persists the current-user record for a browser session.
// The slot holds exactly one serialized user: written on login and
// registration, read on every page, erased on logout. SESSION_BACKEND
// selects one of two backends: a signed+encrypted cookie (default) or a
// Redis slot keyed by a signed token.
package session

import (
	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-panel/internal/model"
)

// Store is the single-slot session persistence API.
type Store interface {
	// Save writes the user into the slot, replacing any previous value.
	Save(c *gin.Context, user model.User) error
	// Load reads the slot. ok is false when no user is logged in or the
	// slot cannot be decoded.
	Load(c *gin.Context) (user model.User, ok bool)
	// Clear erases the slot. Clearing an empty slot is a no-op.
	Clear(c *gin.Context) error
}

// userKey is the one key the slot is stored under.
const userKey = "currentUser"
