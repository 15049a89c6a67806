package services

import (
	"strings"

	"github.com/hyroplugins/seo-optimizer/internal/models"
)

// RobotsService produces the robots.txt body: the robots_content setting
// (or its default) with a trailing Sitemap directive.
type RobotsService struct {
	settings *SettingsService
	baseURL  string
}

func NewRobotsService(settings *SettingsService, baseURL string) *RobotsService {
	return &RobotsService{settings: settings, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *RobotsService) Content() string {
	content := s.settings.Get("robots_content", models.DefaultRobotsContent)
	if strings.TrimSpace(content) == "" {
		content = models.DefaultRobotsContent
	}

	return content + "\n\nSitemap: " + s.baseURL + "/sitemap.xml"
}
