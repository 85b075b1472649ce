package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/renaspress/publisher/internal/middleware"
	"github.com/renaspress/publisher/internal/modules/health"
	"github.com/renaspress/publisher/internal/modules/media"
	"github.com/renaspress/publisher/internal/modules/posts"
	"github.com/renaspress/publisher/internal/modules/publish"
	"github.com/renaspress/publisher/internal/modules/taxonomy"
	"github.com/renaspress/publisher/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.RequireToken()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "renaspress-publisher",
		"version": "1.0.0",
	}

	api := r.Group("/api")
	if a.rdb != nil {
		api.Use(middleware.RateLimit(a.rdb.Raw()))
		api.Use(middleware.Idempotence(a.rdb.Raw()))
	}

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })

	health.NewHandler(a.wp, a.rdb, a.logger).RegisterRoutes(api)

	// Publishing pipeline (create/update) and read-side proxy share the
	// /posts prefix; write routes carry the auth requirement themselves.
	pipeline := publish.New(a.wp, a.cfg.Categories, a.logger)
	publish.NewHandler(pipeline, a.logger).RegisterRoutes(api, authMW)
	posts.NewHandler(posts.NewService(a.wp, a.logger), a.logger).RegisterRoutes(api, authMW)

	taxonomy.NewHandler(a.wp, a.logger).RegisterRoutes(api)
	media.NewHandler(a.wp, a.logger).RegisterRoutes(api, authMW)
}
