package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	"github.com/hyroplugins/seo-optimizer/pkg/logger"
	"github.com/hyroplugins/seo-optimizer/pkg/response"
)

// SeoHandler serves the public SEO endpoints and the default-bundle
// preview for the admin UI.
type SeoHandler struct {
	sitemap *services.SitemapService
	robots  *services.RobotsService
	meta    *services.MetaService
	baseURL string
}

func NewSeoHandler(sitemap *services.SitemapService, robots *services.RobotsService, meta *services.MetaService, baseURL string) *SeoHandler {
	return &SeoHandler{sitemap: sitemap, robots: robots, meta: meta, baseURL: baseURL}
}

// Sitemap serves GET /sitemap.xml. Generation failures degrade to an
// empty well-formed urlset with a 200 status, never a 5xx.
func (h *SeoHandler) Sitemap(c *gin.Context) {
	xml, err := h.sitemap.Generate()
	if err != nil {
		logger.Error().Err(err).Msg("sitemap generation failed, serving empty urlset")
		c.Data(http.StatusOK, "application/xml", []byte(services.EmptySitemapXML))
		return
	}
	c.Data(http.StatusOK, "application/xml", []byte(xml))
}

// Robots serves GET /robots.txt.
func (h *SeoHandler) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.robots.Content()))
}

// DefaultMeta returns the site-default meta bundle and its rendered head
// markup, for the admin settings preview.
func (h *SeoHandler) DefaultMeta(c *gin.Context) {
	bundle := h.meta.Default(h.baseURL + "/")
	response.Success(c, gin.H{
		"bundle": bundle,
		"html":   h.meta.Render(bundle),
	})
}
