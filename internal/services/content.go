package services

import "time"

// ContentItem is the minimal surface a host content entity (post, product,
// page) must expose to carry SEO metadata. TypeTag is a stable string such
// as "post" or "product" and, together with ItemID, keys the stored
// ContentMeta row.
type ContentItem interface {
	TypeTag() string
	ItemID() uint
	DisplayName() string
}

// Optional capabilities. A content item implements whichever of these it
// can answer; the generators fall back per field when a capability is
// missing or returns an empty value.

// SeoTitleProvider supplies an explicit SEO title.
type SeoTitleProvider interface {
	SeoTitle() string
}

// SeoDescriptionProvider supplies an explicit SEO description.
type SeoDescriptionProvider interface {
	SeoDescription() string
}

// SeoKeywordsProvider supplies an explicit SEO keyword list.
type SeoKeywordsProvider interface {
	SeoKeywords() []string
}

// SeoImageProvider supplies an explicit social-sharing image.
type SeoImageProvider interface {
	SeoImage() string
}

// CanonicalURLProvider supplies an explicit canonical URL.
type CanonicalURLProvider interface {
	CanonicalURL() string
}

// URLProvider supplies the public URL of the item, used by the sitemap.
type URLProvider interface {
	URL() string
}

// Timestamped exposes creation/modification times for structured data
// and sitemap lastmod values.
type Timestamped interface {
	CreatedTime() time.Time
	ModifiedTime() time.Time
}

// Authored names the item's author for Article structured data.
type Authored interface {
	AuthorName() string
}

// Priced exposes a price for Product structured data offers.
type Priced interface {
	Price() float64
}

// Rated exposes an aggregate rating for Product structured data.
type Rated interface {
	Rating() (value float64, reviewCount int)
}

// ContentSource lazily enumerates content items for the sitemap. Items is
// called at generate time, not at registration time.
type ContentSource interface {
	Items() ([]ContentItem, error)
}

// ContentSourceFunc adapts a function to the ContentSource interface.
type ContentSourceFunc func() ([]ContentItem, error)

func (f ContentSourceFunc) Items() ([]ContentItem, error) { return f() }
