package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/hyroplugins/seo-optimizer/internal/models"
)

// MetaBundle is the resolved set of head-tag values for one content item
// or for the site default. Image keys are omitted entirely when no image
// resolved, never present with an empty value.
type MetaBundle struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Keywords    []string          `json:"keywords"`
	Canonical   string            `json:"canonical"`
	Robots      string            `json:"robots"`
	OpenGraph   map[string]string `json:"og"`
	TwitterCard map[string]string `json:"twitter"`
}

// Tag emission order is fixed so rendered markup is deterministic.
var (
	ogTagOrder      = []string{"og:title", "og:description", "og:image", "og:url", "og:type", "og:site_name"}
	twitterTagOrder = []string{"twitter:card", "twitter:title", "twitter:description", "twitter:image", "twitter:site"}
)

// MetaService composes title/description/keywords/canonical/robots and
// social tags for content items. Each field resolves independently through
// a three-tier fallback: stored per-item override, then the item's own
// capability, then the site default from settings.
type MetaService struct {
	settings *SettingsService
	metas    *ContentMetaService
	siteName string // fallback when the site_name setting is absent
	baseURL  string
}

func NewMetaService(settings *SettingsService, metas *ContentMetaService, siteName, baseURL string) *MetaService {
	return &MetaService{
		settings: settings,
		metas:    metas,
		siteName: siteName,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Generate builds the meta bundle for a content item. currentURL is the
// URL of the request being rendered; it is the canonical fallback.
func (s *MetaService) Generate(item ContentItem, currentURL string) MetaBundle {
	meta := s.metas.Find(item.TypeTag(), item.ItemID())

	title := s.applyTitleTemplate(s.resolveTitle(item, meta))
	description := s.resolveDescription(item, meta)
	canonical := s.resolveCanonical(item, meta, currentURL)
	image := s.resolveImage(item, meta)
	siteName := s.settings.Get("site_name", s.siteName)

	bundle := MetaBundle{
		Title:       title,
		Description: description,
		Keywords:    s.resolveKeywords(item, meta),
		Canonical:   canonical,
		Robots:      s.resolveRobots(meta),
		OpenGraph:   s.buildOpenGraph(title, description, image, canonical, siteName),
		TwitterCard: s.buildTwitterCard(title, description, image),
	}
	return bundle
}

// Default builds the site-default bundle purely from settings. The default
// twitter card is always a plain summary without an image; only the Open
// Graph side carries default_og_image.
func (s *MetaService) Default(currentURL string) MetaBundle {
	siteName := s.settings.Get("site_name", s.siteName)
	description := s.settings.Get("default_description", "")
	image := s.absoluteURL(s.settings.Get("default_og_image", ""))

	return MetaBundle{
		Title:       siteName,
		Description: description,
		Keywords:    nil,
		Canonical:   currentURL,
		Robots:      "index,follow",
		OpenGraph:   s.buildOpenGraph(siteName, description, image, currentURL, siteName),
		TwitterCard: s.buildTwitterCard(siteName, description, ""),
	}
}

func (s *MetaService) resolveTitle(item ContentItem, meta *models.ContentMeta) string {
	if meta != nil && meta.Title != "" {
		return meta.Title
	}
	if p, ok := item.(SeoTitleProvider); ok {
		if title := p.SeoTitle(); title != "" {
			return title
		}
	}
	return item.DisplayName()
}

func (s *MetaService) applyTitleTemplate(title string) string {
	template := s.settings.Get("title_template", "{title} | {site}")
	siteName := s.settings.Get("site_name", s.siteName)

	replaced := strings.ReplaceAll(template, "{title}", title)
	return strings.ReplaceAll(replaced, "{site}", siteName)
}

func (s *MetaService) resolveDescription(item ContentItem, meta *models.ContentMeta) string {
	if meta != nil && meta.Description != "" {
		return meta.Description
	}
	if p, ok := item.(SeoDescriptionProvider); ok {
		if description := p.SeoDescription(); description != "" {
			return description
		}
	}
	return s.settings.Get("default_description", "")
}

func (s *MetaService) resolveKeywords(item ContentItem, meta *models.ContentMeta) []string {
	if meta != nil {
		if keywords := meta.KeywordsArray(); len(keywords) > 0 {
			return keywords
		}
	}
	if p, ok := item.(SeoKeywordsProvider); ok {
		return p.SeoKeywords()
	}
	return nil
}

func (s *MetaService) resolveCanonical(item ContentItem, meta *models.ContentMeta, currentURL string) string {
	if meta != nil && meta.CanonicalURL != "" {
		return meta.CanonicalURL
	}
	if p, ok := item.(CanonicalURLProvider); ok {
		if canonical := p.CanonicalURL(); canonical != "" {
			return canonical
		}
	}
	return currentURL
}

func (s *MetaService) resolveRobots(meta *models.ContentMeta) string {
	if meta != nil && meta.Robots != "" {
		return meta.Robots
	}
	return "index,follow"
}

func (s *MetaService) resolveImage(item ContentItem, meta *models.ContentMeta) string {
	image := ""
	if meta != nil && meta.OGImage != "" {
		image = meta.OGImage
	} else if p, ok := item.(SeoImageProvider); ok {
		image = p.SeoImage()
	}
	if image == "" {
		image = s.settings.Get("default_og_image", "")
	}
	return s.absoluteURL(image)
}

// absoluteURL resolves an image path against the site base URL. Already
// absolute URLs pass through, empty stays empty.
func (s *MetaService) absoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (s *MetaService) buildOpenGraph(title, description, image, canonical, siteName string) map[string]string {
	og := map[string]string{
		"og:title": title,
		"og:type":  "website",
	}
	if description != "" {
		og["og:description"] = description
	}
	if image != "" {
		og["og:image"] = image
	}
	if canonical != "" {
		og["og:url"] = canonical
	}
	if siteName != "" {
		og["og:site_name"] = siteName
	}
	return og
}

func (s *MetaService) buildTwitterCard(title, description, image string) map[string]string {
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}

	twitter := map[string]string{
		"twitter:card":  card,
		"twitter:title": title,
	}
	if description != "" {
		twitter["twitter:description"] = description
	}
	if image != "" {
		twitter["twitter:image"] = image
	}
	if handle := s.settings.Get("twitter_handle", ""); handle != "" {
		twitter["twitter:site"] = "@" + strings.TrimLeft(handle, "@")
	}
	return twitter
}

// Render serializes a bundle into head markup. Tags with empty content
// are omitted; every interpolated value is HTML-escaped. The fb:app_id
// tag is not part of the bundle and is appended here when configured.
func (s *MetaService) Render(bundle MetaBundle) string {
	var tags []string

	tags = append(tags, fmt.Sprintf("<title>%s</title>", html.EscapeString(bundle.Title)))

	if bundle.Description != "" {
		tags = append(tags, metaNameTag("description", bundle.Description))
	}
	if len(bundle.Keywords) > 0 {
		tags = append(tags, metaNameTag("keywords", strings.Join(bundle.Keywords, ", ")))
	}
	if bundle.Canonical != "" {
		tags = append(tags, fmt.Sprintf(`<link rel="canonical" href="%s">`, html.EscapeString(bundle.Canonical)))
	}
	tags = append(tags, metaNameTag("robots", bundle.Robots))

	for _, property := range ogTagOrder {
		if content := bundle.OpenGraph[property]; content != "" {
			tags = append(tags, metaPropertyTag(property, content))
		}
	}
	for _, name := range twitterTagOrder {
		if content := bundle.TwitterCard[name]; content != "" {
			tags = append(tags, metaNameTag(name, content))
		}
	}

	if fbAppID := s.settings.Get("facebook_app_id", ""); fbAppID != "" {
		tags = append(tags, metaPropertyTag("fb:app_id", fbAppID))
	}

	return strings.Join(tags, "\n    ")
}

func metaNameTag(name, content string) string {
	return fmt.Sprintf(`<meta name="%s" content="%s">`, html.EscapeString(name), html.EscapeString(content))
}

func metaPropertyTag(property, content string) string {
	return fmt.Sprintf(`<meta property="%s" content="%s">`, html.EscapeString(property), html.EscapeString(content))
}
