package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/backend"
	"github.com/coursedesk/coursedesk-panel/internal/config"
	"github.com/coursedesk/coursedesk-panel/internal/middleware"
	"github.com/coursedesk/coursedesk-panel/internal/page"
	"github.com/coursedesk/coursedesk-panel/internal/response"
	"github.com/coursedesk/coursedesk-panel/internal/router"
	"github.com/coursedesk/coursedesk-panel/internal/service"
	"github.com/coursedesk/coursedesk-panel/internal/session"
	"github.com/coursedesk/coursedesk-panel/internal/validation"
)

// App wires the panel together: session store, backend clients, auth
// service, page handlers and the page router, all mounted on one Gin
// engine. Tests construct an App the same way main does.
type App struct {
	Engine *gin.Engine
	Router *router.Router
	Auth   *service.AuthService
	API    *backend.Client

	log zerolog.Logger
}

// New builds the full application from config. The ctx is only used
// while connecting to Redis when that session backend is selected.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	gin.SetMode(cfg.GinMode)
	validation.Setup()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(response.RequestIDMiddleware())
	engine.Use(middleware.AccessLog(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(cors.New(corsConfig))

	engine.SetHTMLTemplate(page.Templates())

	// ─── Session Store ─────────────────────────────────────────────────
	var store session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		rdb, err := session.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		store = session.NewRedisStore(rdb, cfg.SessionSecret, cfg.SessionTTL, log)
	default:
		store = session.NewCookieStore(cfg.SessionSecret, cfg.SessionTTL)
	}
	flashes := session.NewFlashes(cfg.SessionSecret)

	// ─── Backend Clients and Services ──────────────────────────────────
	api := backend.New(cfg.BackendURL, log)
	auth := service.NewAuthService(api.Users, store, log)

	// ─── Pages and Router ──────────────────────────────────────────────
	pages := page.New(auth, api, flashes, log)
	pageRouter := router.New(log)
	pages.Register(pageRouter, engine)
	pageRouter.Start(engine)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &App{
		Engine: engine,
		Router: pageRouter,
		Auth:   auth,
		API:    api,
		log:    log,
	}, nil
}
