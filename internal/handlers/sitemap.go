package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	"github.com/hyroplugins/seo-optimizer/pkg/response"
)

// SitemapHandler backs the admin regenerate and ping actions.
type SitemapHandler struct {
	sitemap *services.SitemapService
}

func NewSitemapHandler(sitemap *services.SitemapService) *SitemapHandler {
	return &SitemapHandler{sitemap: sitemap}
}

// Regenerate drops the cached document and rebuilds it. This is the
// explicit invalidation path; routine redirect and meta edits do not
// touch the sitemap cache.
func (h *SitemapHandler) Regenerate(c *gin.Context) {
	h.sitemap.Invalidate()

	xml, err := h.sitemap.Generate()
	if err != nil {
		response.Error(c, response.NewServerError("failed to generate sitemap: "+err.Error()))
		return
	}

	response.Success(c, gin.H{
		"message":     "sitemap regenerated",
		"sitemap_url": h.sitemap.SitemapURLString(),
		"bytes":       len(xml),
	})
}

// Ping notifies the configured search engines. Refused outright when the
// site base URL is a loopback address: search engines cannot reach it.
func (h *SitemapHandler) Ping(c *gin.Context) {
	if services.IsLoopbackURL(h.sitemap.SitemapURLString()) {
		response.BadRequest(c, "cannot ping search engines from a localhost site; deploy to a public domain first")
		return
	}

	results := h.sitemap.PingSearchEngines()

	success := 0
	var parts []string
	for _, engine := range services.SearchEngineNames() {
		if results[engine] {
			success++
			parts = append(parts, fmt.Sprintf("%s: success", engine))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed", engine))
		}
	}

	response.Success(c, gin.H{
		"results": results,
		"message": fmt.Sprintf("sitemap ping results: %s", strings.Join(parts, ", ")),
		"success": success > 0,
	})
}
