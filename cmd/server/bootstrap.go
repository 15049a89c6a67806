package main

import (
	"time"

	"github.com/hyroplugins/seo-optimizer/internal/config"
	"github.com/hyroplugins/seo-optimizer/internal/handlers"
	"github.com/hyroplugins/seo-optimizer/internal/models"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	"github.com/hyroplugins/seo-optimizer/internal/utils"
	"github.com/hyroplugins/seo-optimizer/pkg/logger"
	gocache "github.com/patrickmn/go-cache"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	redirectService *services.RedirectService
	scheduler       *services.SitemapScheduler

	seoHandler         *handlers.SeoHandler
	settingsHandler    *handlers.SettingsHandler
	redirectHandler    *handlers.RedirectHandler
	contentMetaHandler *handlers.ContentMetaHandler
	sitemapHandler     *handlers.SitemapHandler
}

// bootstrap initializes all application dependencies: database, cache,
// services, optional scheduler.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed default settings
	if err := models.SeedDefaultSettings(cfg.Site.Name); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default settings")
	}

	// Shared process-wide TTL cache for settings and the sitemap document
	cache := gocache.New(time.Hour, 10*time.Minute)

	db := models.GetDB()
	settingsService := services.NewSettingsService(db, cache)
	contentMetaService := services.NewContentMetaService(db)
	redirectService := services.NewRedirectService(db, cfg.Site.BaseURL)
	metaService := services.NewMetaService(settingsService, contentMetaService, cfg.Site.Name, cfg.Site.BaseURL)
	robotsService := services.NewRobotsService(settingsService, cfg.Site.BaseURL)

	sitemapService := services.NewSitemapService(cache, cfg.Site.BaseURL)
	sitemapService.AddURL(cfg.Site.BaseURL+"/", services.URLOptions{
		Changefreq: "daily",
		Priority:   "1.0",
	})

	// Optional cron-driven sitemap refresh
	var scheduler *services.SitemapScheduler
	if cfg.Sitemap.RefreshCron != "" {
		scheduler = services.NewSitemapScheduler(sitemapService, cfg.Sitemap.PingOnCron)
		if err := scheduler.Start(cfg.Sitemap.RefreshCron); err != nil {
			logger.Warn().Err(err).Msg("Failed to start sitemap scheduler")
			scheduler = nil
		}
	}

	return &appServices{
		redirectService:    redirectService,
		scheduler:          scheduler,
		seoHandler:         handlers.NewSeoHandler(sitemapService, robotsService, metaService, cfg.Site.BaseURL),
		settingsHandler:    handlers.NewSettingsHandler(settingsService),
		redirectHandler:    handlers.NewRedirectHandler(redirectService),
		contentMetaHandler: handlers.NewContentMetaHandler(contentMetaService),
		sitemapHandler:     handlers.NewSitemapHandler(sitemapService),
	}
}

// shutdown gracefully stops background work.
func (s *appServices) shutdown() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	logger.Info().Msg("All schedulers stopped")
}
