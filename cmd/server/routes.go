package main

import (
	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/middleware"
	"github.com/hyroplugins/seo-optimizer/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Redirect interception runs before any content-serving logic.
	r.Use(middleware.Redirect(svc.redirectService))

	// Rate limiter for the regenerate/ping admin actions
	actionLimiter := middleware.NewRateLimiter(1, 5)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "seo-optimizer"})
	})

	// Public SEO endpoints
	r.GET("/sitemap.xml", svc.seoHandler.Sitemap)
	r.GET("/robots.txt", svc.seoHandler.Robots)

	// Admin API (tokens issued by the host application)
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/settings", svc.settingsHandler.GetAll)
		api.PUT("/settings", svc.settingsHandler.Update)

		api.GET("/redirects", svc.redirectHandler.List)
		api.POST("/redirects", svc.redirectHandler.Create)
		api.PUT("/redirects/:id", svc.redirectHandler.Update)
		api.DELETE("/redirects/:id", svc.redirectHandler.Delete)
		api.POST("/redirects/:id/toggle", svc.redirectHandler.Toggle)

		api.GET("/meta/default", svc.seoHandler.DefaultMeta)
		api.GET("/meta/:type/:id", svc.contentMetaHandler.Get)
		api.PUT("/meta/:type/:id", svc.contentMetaHandler.Upsert)
		api.DELETE("/meta/:type/:id", svc.contentMetaHandler.Delete)

		actions := api.Group("/sitemap", actionLimiter.Middleware())
		{
			actions.POST("/regenerate", svc.sitemapHandler.Regenerate)
			actions.POST("/ping", svc.sitemapHandler.Ping)
		}
	}
}
