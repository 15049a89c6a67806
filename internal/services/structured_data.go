package services

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/hyroplugins/seo-optimizer/internal/models"
)

const schemaContext = "https://schema.org"

// Class-name detection map for items with no stored schema_type.
var typeTagSchemas = map[string]string{
	"post":    "Article",
	"article": "Article",
	"product": "Product",
	"page":    "WebPage",
}

// StructuredDataService builds JSON-LD schema graphs for content items.
// Each render pass uses a fresh Builder; builders accumulate schemas and
// emit one script block per schema.
type StructuredDataService struct {
	settings *SettingsService
	metas    *ContentMetaService
	siteName string
	baseURL  string
}

func NewStructuredDataService(settings *SettingsService, metas *ContentMetaService, siteName, baseURL string) *StructuredDataService {
	return &StructuredDataService{
		settings: settings,
		metas:    metas,
		siteName: siteName,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Builder starts an empty schema accumulation.
func (s *StructuredDataService) Builder() *SchemaBuilder {
	return &SchemaBuilder{svc: s}
}

type SchemaBuilder struct {
	svc     *StructuredDataService
	schemas []map[string]interface{}
}

// ForItem appends the schema for one content item. The schema type is the
// item's stored schema_type when present, else inferred from its type tag;
// unrecognized types add nothing and are not an error.
func (b *SchemaBuilder) ForItem(item ContentItem, currentURL string) *SchemaBuilder {
	meta := b.svc.metas.Find(item.TypeTag(), item.ItemID())

	schemaType := ""
	if meta != nil && meta.SchemaType != "" {
		schemaType = meta.SchemaType
	} else {
		schemaType = typeTagSchemas[strings.ToLower(item.TypeTag())]
	}

	switch schemaType {
	case "Article":
		b.schemas = append(b.schemas, b.articleSchema(item))
	case "Product":
		b.schemas = append(b.schemas, b.productSchema(item))
	case "WebPage":
		b.schemas = append(b.schemas, b.webPageSchema(item, meta, currentURL))
	}
	return b
}

func (b *SchemaBuilder) articleSchema(item ContentItem) map[string]interface{} {
	schema := map[string]interface{}{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": item.DisplayName(),
	}

	if ts, ok := item.(Timestamped); ok {
		schema["datePublished"] = ts.CreatedTime().Format(time.RFC3339)
		schema["dateModified"] = ts.ModifiedTime().Format(time.RFC3339)
	}

	if description := b.itemDescription(item); description != "" {
		schema["description"] = description
	}
	if image := b.itemImage(item); image != "" {
		schema["image"] = image
	}

	if authored, ok := item.(Authored); ok {
		name := authored.AuthorName()
		if name == "" {
			name = "Unknown"
		}
		schema["author"] = map[string]interface{}{
			"@type": "Person",
			"name":  name,
		}
	}

	schema["publisher"] = map[string]interface{}{
		"@type": "Organization",
		"name":  b.svc.settings.Get("site_name", b.svc.siteName),
		"logo": map[string]interface{}{
			"@type": "ImageObject",
			"url":   b.svc.absoluteURL(b.svc.settings.Get("default_og_image", "")),
		},
	}

	return schema
}

func (b *SchemaBuilder) productSchema(item ContentItem) map[string]interface{} {
	schema := map[string]interface{}{
		"@context": schemaContext,
		"@type":    "Product",
		"name":     item.DisplayName(),
	}

	if description := b.itemDescription(item); description != "" {
		schema["description"] = description
	}
	if image := b.itemImage(item); image != "" {
		schema["image"] = image
	}

	if priced, ok := item.(Priced); ok {
		schema["offers"] = map[string]interface{}{
			"@type":         "Offer",
			"price":         priced.Price(),
			"priceCurrency": "USD",
			"availability":  "https://schema.org/InStock",
		}
	}

	if rated, ok := item.(Rated); ok {
		value, count := rated.Rating()
		schema["aggregateRating"] = map[string]interface{}{
			"@type":       "AggregateRating",
			"ratingValue": value,
			"reviewCount": count,
		}
	}

	return schema
}

func (b *SchemaBuilder) webPageSchema(item ContentItem, meta *models.ContentMeta, currentURL string) map[string]interface{} {
	url := currentURL
	if meta != nil && meta.CanonicalURL != "" {
		url = meta.CanonicalURL
	} else if p, ok := item.(CanonicalURLProvider); ok {
		if canonical := p.CanonicalURL(); canonical != "" {
			url = canonical
		}
	}

	// description is an empty string when unavailable, not omitted.
	return map[string]interface{}{
		"@context":    schemaContext,
		"@type":       "WebPage",
		"name":        item.DisplayName(),
		"description": b.itemDescription(item),
		"url":         url,
	}
}

// Organization appends the site-level Organization schema.
func (b *SchemaBuilder) Organization() *SchemaBuilder {
	b.schemas = append(b.schemas, map[string]interface{}{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     b.svc.settings.Get("site_name", b.svc.siteName),
		"url":      b.svc.baseURL + "/",
		"logo":     b.svc.absoluteURL(b.svc.settings.Get("default_og_image", "")),
	})
	return b
}

// BreadcrumbItem is one entry of a breadcrumb trail, in display order.
type BreadcrumbItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Breadcrumb appends a BreadcrumbList schema with 1-indexed positions.
func (b *SchemaBuilder) Breadcrumb(items []BreadcrumbItem) *SchemaBuilder {
	listItems := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		entry := map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
		}
		if item.URL != "" {
			entry["item"] = item.URL
		}
		listItems = append(listItems, entry)
	}

	b.schemas = append(b.schemas, map[string]interface{}{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": listItems,
	})
	return b
}

// Schemas returns the accumulated schema objects.
func (b *SchemaBuilder) Schemas() []map[string]interface{} {
	return b.schemas
}

// Render emits one pretty-printed JSON-LD script block per accumulated
// schema, with slashes left unescaped. No schemas renders to an empty string.
func (b *SchemaBuilder) Render() string {
	if len(b.schemas) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(b.schemas))
	for _, schema := range b.schemas {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(schema); err != nil {
			continue
		}
		blocks = append(blocks, "<script type=\"application/ld+json\">\n"+
			strings.TrimRight(buf.String(), "\n")+
			"\n</script>")
	}

	return strings.Join(blocks, "\n")
}

func (b *SchemaBuilder) itemDescription(item ContentItem) string {
	if meta := b.svc.metas.Find(item.TypeTag(), item.ItemID()); meta != nil && meta.Description != "" {
		return meta.Description
	}
	if p, ok := item.(SeoDescriptionProvider); ok {
		return p.SeoDescription()
	}
	return ""
}

func (b *SchemaBuilder) itemImage(item ContentItem) string {
	image := ""
	if meta := b.svc.metas.Find(item.TypeTag(), item.ItemID()); meta != nil && meta.OGImage != "" {
		image = meta.OGImage
	} else if p, ok := item.(SeoImageProvider); ok {
		image = p.SeoImage()
	}
	return b.svc.absoluteURL(image)
}

func (s *StructuredDataService) absoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}
