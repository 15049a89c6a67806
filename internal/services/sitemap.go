package services

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyroplugins/seo-optimizer/pkg/logger"
	gocache "github.com/patrickmn/go-cache"
)

const (
	sitemapCacheKey = "sitemap_xml"
	sitemapCacheTTL = time.Hour
)

// searchEngines is the fixed list of ping targets, in report order.
var searchEngines = []struct {
	Name    string
	PingURL string
}{
	{Name: "google", PingURL: "https://www.google.com/ping?sitemap="},
	{Name: "bing", PingURL: "https://www.bing.com/ping?sitemap="},
}

// SearchEngineNames returns the configured ping targets in report order.
func SearchEngineNames() []string {
	names := make([]string, len(searchEngines))
	for i, engine := range searchEngines {
		names[i] = engine.Name
	}
	return names
}

// pingClient caps every outbound ping at 10 seconds.
var pingClient = &http.Client{Timeout: 10 * time.Second}

// SitemapURL is one rendered sitemap entry. Entries are transient; only
// the whole rendered document is cached.
type SitemapURL struct {
	Loc        string
	Lastmod    string
	Changefreq string
	Priority   string
}

// URLOptions overrides any subset of the AddURL defaults.
type URLOptions struct {
	Lastmod    string
	Changefreq string
	Priority   string
}

// URLExtractor maps a content item to its sitemap URL. Returning ""
// skips the item.
type URLExtractor func(ContentItem) string

type collectionSource struct {
	source  ContentSource
	extract URLExtractor
}

// SitemapService aggregates static and collection-backed URLs into a
// cached XML document. Static URLs and collections are registered at
// startup; Generate may then be called concurrently.
type SitemapService struct {
	cache   *gocache.Cache
	baseURL string
	static  []SitemapURL
	sources []collectionSource
}

func NewSitemapService(cache *gocache.Cache, baseURL string) *SitemapService {
	return &SitemapService{
		cache:   cache,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// AddURL registers a static URL. Defaults: lastmod = now at build time,
// changefreq = weekly, priority = 0.5.
func (s *SitemapService) AddURL(loc string, opts URLOptions) *SitemapService {
	entry := SitemapURL{
		Loc:        loc,
		Lastmod:    opts.Lastmod,
		Changefreq: opts.Changefreq,
		Priority:   opts.Priority,
	}
	if entry.Changefreq == "" {
		entry.Changefreq = "weekly"
	}
	if entry.Priority == "" {
		entry.Priority = "0.5"
	}
	s.static = append(s.static, entry)
	return s
}

// AddCollection registers a lazily-enumerated content source. extract may
// be nil, in which case each item's own URL capability is used; items
// yielding no URL are skipped.
func (s *SitemapService) AddCollection(source ContentSource, extract URLExtractor) *SitemapService {
	s.sources = append(s.sources, collectionSource{source: source, extract: extract})
	return s
}

// Generate returns the sitemap XML, memoized behind the whole-document
// cache for one hour. Two calls inside the TTL window with no intervening
// Invalidate return byte-identical XML.
func (s *SitemapService) Generate() (string, error) {
	if cached, found := s.cache.Get(sitemapCacheKey); found {
		if xml, ok := cached.(string); ok {
			return xml, nil
		}
	}

	entries, err := s.collect()
	if err != nil {
		return "", err
	}

	xml := buildSitemapXML(entries)
	s.cache.Set(sitemapCacheKey, xml, sitemapCacheTTL)
	return xml, nil
}

// Invalidate drops the cached document. Routine redirect/meta edits do
// not call this; only the explicit regenerate action and the scheduled
// refresh do.
func (s *SitemapService) Invalidate() {
	s.cache.Delete(sitemapCacheKey)
}

func (s *SitemapService) collect() ([]SitemapURL, error) {
	now := time.Now().Format(time.RFC3339)

	entries := make([]SitemapURL, 0, len(s.static))
	for _, entry := range s.static {
		if entry.Lastmod == "" {
			entry.Lastmod = now
		}
		entries = append(entries, entry)
	}

	for _, col := range s.sources {
		items, err := col.source.Items()
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			loc := ""
			if col.extract != nil {
				loc = col.extract(item)
			}
			if loc == "" {
				if p, ok := item.(URLProvider); ok {
					loc = p.URL()
				}
			}
			if loc == "" {
				continue
			}

			lastmod := now
			if ts, ok := item.(Timestamped); ok {
				if modified := ts.ModifiedTime(); !modified.IsZero() {
					lastmod = modified.Format(time.RFC3339)
				}
			}

			entries = append(entries, SitemapURL{
				Loc:        loc,
				Lastmod:    lastmod,
				Changefreq: "weekly",
				Priority:   "0.7",
			})
		}
	}

	return entries, nil
}

// EmptySitemapXML is the degraded document served when generation fails.
const EmptySitemapXML = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
	`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n" +
	`</urlset>`

func buildSitemapXML(entries []SitemapURL) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	for _, entry := range entries {
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>" + html.EscapeString(entry.Loc) + "</loc>\n")
		b.WriteString("    <lastmod>" + entry.Lastmod + "</lastmod>\n")
		b.WriteString("    <changefreq>" + entry.Changefreq + "</changefreq>\n")
		b.WriteString("    <priority>" + entry.Priority + "</priority>\n")
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>")
	return b.String()
}

// SitemapURLString is the absolute URL of the served sitemap.
func (s *SitemapService) SitemapURLString() string {
	return s.baseURL + "/sitemap.xml"
}

// PingSearchEngines issues one GET per engine with the sitemap URL as a
// query parameter. Each engine's result is its HTTP success status;
// network and timeout errors are recorded as false, never propagated.
// Callers are responsible for refusing to ping from loopback hosts.
func (s *SitemapService) PingSearchEngines() map[string]bool {
	sitemapURL := url.QueryEscape(s.SitemapURLString())

	results := make(map[string]bool, len(searchEngines))
	for _, engine := range searchEngines {
		ok, err := ping(engine.PingURL + sitemapURL)
		if err != nil {
			logger.Warn().Err(err).Str("engine", engine.Name).Msg("sitemap ping failed")
		}
		results[engine.Name] = ok
	}
	return results
}

func ping(pingURL string) (bool, error) {
	resp, err := pingClient.Get(pingURL)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return true, nil
}
