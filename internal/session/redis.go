package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/model"
)

const (
	tokenCookieName = "panel_token"
	slotKeyPrefix   = "panel:session:"
)

// NewRedisClient creates and validates a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("Redis connected")
	return rdb, nil
}

// RedisStore keeps the serialized user in Redis under a slot keyed by the
// jti of a signed token held in a cookie. The cookie carries no user data;
// logout removes the slot, which invalidates the token everywhere.
type RedisStore struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(rdb *redis.Client, secret string, ttl time.Duration, log zerolog.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With().Str("component", "session").Logger(),
	}
}

type slotClaims struct {
	jwt.RegisteredClaims
}

func (s *RedisStore) Save(c *gin.Context, user model.User) error {
	jti := uuid.New().String()
	now := time.Now()

	claims := slotClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(c.Request.Context(), slotKeyPrefix+jti, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	s.setCookie(c, signed, int(s.ttl.Seconds()))
	return nil
}

func (s *RedisStore) Load(c *gin.Context) (model.User, bool) {
	jti, ok := s.tokenID(c)
	if !ok {
		return model.User{}, false
	}

	raw, err := s.rdb.Get(c.Request.Context(), slotKeyPrefix+jti).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Error().Err(err).Msg("load session slot")
		}
		return model.User{}, false
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return model.User{}, false
	}
	return user, true
}

func (s *RedisStore) Clear(c *gin.Context) error {
	if jti, ok := s.tokenID(c); ok {
		if err := s.rdb.Del(c.Request.Context(), slotKeyPrefix+jti).Err(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	s.setCookie(c, "", -1)
	return nil
}

// tokenID extracts and verifies the jti from the token cookie.
func (s *RedisStore) tokenID(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(tokenCookieName)
	if err != nil || raw == "" {
		return "", false
	}

	var claims slotClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}

func (s *RedisStore) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
