package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const flashSessionName = "panel_flash"

// Flash is a one-shot banner message: shown on the next page render, then
// gone. Kind is "success" or "error".
type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// Flashes carries banner messages across the redirect that follows every
// mutation. Always cookie-backed, independent of the session slot backend.
type Flashes struct {
	store *sessions.CookieStore
}

// NewFlashes builds the flash cookie store from the same secret as the
// session slot.
func NewFlashes(secret string) *Flashes {
	cs := sessions.NewCookieStore(
		deriveKey(secret, "flash-hash", 64),
		deriveKey(secret, "flash-block", 32),
	)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((5 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flashes{store: cs}
}

// Success queues a success banner.
func (f *Flashes) Success(c *gin.Context, message string) {
	f.add(c, "success", message)
}

// Error queues an error banner.
func (f *Flashes) Error(c *gin.Context, message string) {
	f.add(c, "error", message)
}

func (f *Flashes) add(c *gin.Context, kind, message string) {
	sess, _ := f.store.Get(c.Request, flashSessionName)
	sess.AddFlash(Flash{Kind: kind, Message: message})
	_ = sess.Save(c.Request, c.Writer)
}

// Take returns and consumes all queued banners.
func (f *Flashes) Take(c *gin.Context) []Flash {
	sess, err := f.store.Get(c.Request, flashSessionName)
	if err != nil {
		return nil
	}

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request, c.Writer) // persist consumption

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if fl, ok := v.(Flash); ok {
			flashes = append(flashes, fl)
		}
	}
	return flashes
}
