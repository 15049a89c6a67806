package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/services"
)

// Redirect intercepts every inbound request before normal routing and
// consults the redirect table. On a match it issues the rule's configured
// redirect and stops the chain; otherwise the request proceeds untouched.
// API and SEO endpoints are exempt so a stored rule can never shadow them.
func Redirect(resolver *services.RedirectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") ||
			path == "/sitemap.xml" ||
			path == "/robots.txt" ||
			path == "/health" {
			c.Next()
			return
		}

		if resolution := resolver.Resolve(path); resolution != nil {
			c.Redirect(resolution.StatusCode, resolution.Target)
			c.Abort()
			return
		}

		c.Next()
	}
}
