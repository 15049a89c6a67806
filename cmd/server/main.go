package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/config"
	"github.com/hyroplugins/seo-optimizer/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Mode == "debug" {
		logger.Init("debug")
	}

	// Initialize database, cache, services and optional scheduler
	svc := bootstrap(cfg)
	defer svc.shutdown()

	// Set Gin mode and register routes
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	registerRoutes(r, svc)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("SEO optimizer listening on %s (site: %s)", addr, cfg.Site.BaseURL)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Server exited: %v", err)
	}
}
