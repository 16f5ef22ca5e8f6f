// Package router assembles the gin engine: global middleware, health probe
// and versioned route registration.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/whizdome/promorama-backend/internal/infrastructure/auth"
	"github.com/whizdome/promorama-backend/internal/infrastructure/config"
	"github.com/whizdome/promorama-backend/internal/infrastructure/logger"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router builds the HTTP engine. Public registrars mount under /api/v1
// unauthenticated; protected ones sit behind the bearer-token middleware.
type Router struct {
	cfg       config.HTTPConfig
	tokens    *auth.JWTService
	logger    *zap.Logger
	public    []RouteRegistrar
	protected []RouteRegistrar
}

// NewRouter creates a new Router
func NewRouter(cfg config.HTTPConfig, tokens *auth.JWTService, log *zap.Logger) *Router {
	return &Router{cfg: cfg, tokens: tokens, logger: log}
}

// Public adds registrars that serve without authentication
func (r *Router) Public(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Protected adds registrars that require a valid bearer token
func (r *Router) Protected(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// Build assembles and returns the engine
func (r *Router) Build() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(r.logger))
	engine.Use(logger.Recovery(r.logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:  r.cfg.CORSAllowOrigins,
		AllowMethods:  r.cfg.CORSAllowMethods,
		AllowHeaders:  r.cfg.CORSAllowHeaders,
		ExposeHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
	}))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	for _, reg := range r.public {
		reg.RegisterRoutes(api)
	}

	secured := api.Group("")
	secured.Use(middleware.Authenticate(r.tokens, r.logger))
	for _, reg := range r.protected {
		reg.RegisterRoutes(secured)
	}

	return engine
}
