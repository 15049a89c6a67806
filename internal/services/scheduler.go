package services

import (
	"strings"

	"github.com/hyroplugins/seo-optimizer/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SitemapScheduler periodically rebuilds the sitemap cache and optionally
// pings search engines. Disabled unless a cron expression is configured;
// the on-demand regenerate action remains the primary invalidation path.
type SitemapScheduler struct {
	sitemap *SitemapService
	cron    *cron.Cron
	ping    bool
}

func NewSitemapScheduler(sitemap *SitemapService, ping bool) *SitemapScheduler {
	return &SitemapScheduler{
		sitemap: sitemap,
		cron:    cron.New(),
		ping:    ping,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *SitemapScheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return err
	}
	s.cron.Start()
	logger.Infof("[Sitemap] Refresh scheduler started, spec: %s", spec)
	return nil
}

// Stop halts the cron loop; a running refresh finishes first.
func (s *SitemapScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SitemapScheduler) refresh() {
	s.sitemap.Invalidate()
	if _, err := s.sitemap.Generate(); err != nil {
		logger.Error().Err(err).Msg("scheduled sitemap rebuild failed")
		return
	}
	logger.Info().Msg("scheduled sitemap rebuild completed")

	if !s.ping {
		return
	}
	if IsLoopbackURL(s.sitemap.SitemapURLString()) {
		logger.Warn().Msg("skipping scheduled ping: site base URL is loopback")
		return
	}
	results := s.sitemap.PingSearchEngines()
	for engine, ok := range results {
		logger.Info().Str("engine", engine).Bool("success", ok).Msg("scheduled sitemap ping")
	}
}

// IsLoopbackURL reports whether a URL points at a loopback host. Pings
// are refused for loopback sites since search engines cannot reach them.
func IsLoopbackURL(rawURL string) bool {
	return strings.Contains(rawURL, "localhost") ||
		strings.Contains(rawURL, "127.0.0.1") ||
		strings.Contains(rawURL, "::1")
}
