package session

import (
	"crypto/sha256"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"

	"github.com/coursedesk/coursedesk-panel/internal/model"
)

const cookieSessionName = "panel_session"

// CookieStore keeps the serialized user inside a signed and encrypted
// cookie. Both securecookie keys are derived from the configured secret,
// so restarts keep existing sessions valid.
type CookieStore struct {
	store *sessions.CookieStore
}

// NewCookieStore derives the cookie keys from secret and builds the store.
func NewCookieStore(secret string, ttl time.Duration) *CookieStore {
	hashKey := deriveKey(secret, "cookie-hash", 64)
	blockKey := deriveKey(secret, "cookie-block", 32)

	cs := sessions.NewCookieStore(hashKey, blockKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &CookieStore{store: cs}
}

func (s *CookieStore) Save(c *gin.Context, user model.User) error {
	sess, _ := s.store.Get(c.Request, cookieSessionName)

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess.Values[userKey] = string(raw)

	return sess.Save(c.Request, c.Writer)
}

func (s *CookieStore) Load(c *gin.Context) (model.User, bool) {
	sess, err := s.store.Get(c.Request, cookieSessionName)
	if err != nil {
		return model.User{}, false
	}

	raw, ok := sess.Values[userKey].(string)
	if !ok || raw == "" {
		return model.User{}, false
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return model.User{}, false
	}
	return user, true
}

func (s *CookieStore) Clear(c *gin.Context) error {
	sess, _ := s.store.Get(c.Request, cookieSessionName)
	delete(sess.Values, userKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request, c.Writer)
}

// deriveKey stretches the session secret into an independent key per use.
func deriveKey(secret, label string, size int) []byte {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("coursedesk-panel/"+label))
	key := make([]byte, size)
	if _, err := io.ReadFull(r, key); err != nil {
		panic(err) // hkdf with sha256 cannot fail for these sizes
	}
	return key
}
