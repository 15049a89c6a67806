package models

import (
	"strings"
	"time"
)

// ContentMeta holds the per-item SEO overrides for one content item,
// keyed by a stable (model_type, model_id) pair. model_type is a string
// tag such as "post" or "product", not a runtime type reference.
// A row is created lazily on first write; cleanup on content deletion is
// the owning item's responsibility.
type ContentMeta struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ModelType    string    `gorm:"size:100;not null;index:idx_seo_meta_model,priority:1" json:"model_type"`
	ModelID      uint      `gorm:"not null;index:idx_seo_meta_model,priority:2" json:"model_id"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Keywords     string    `gorm:"type:text" json:"keywords"` // comma-joined
	OGImage      string    `gorm:"size:500" json:"og_image"`
	CanonicalURL string    `gorm:"size:500" json:"canonical_url"`
	Robots       string    `gorm:"size:100;default:index,follow" json:"robots"`
	SchemaType   string    `gorm:"size:100" json:"schema_type"`
	SchemaData   string    `gorm:"type:text" json:"schema_data"` // opaque JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ContentMeta) TableName() string { return "seo_meta" }

// KeywordsArray splits the stored comma-joined keywords into a trimmed list.
func (m *ContentMeta) KeywordsArray() []string {
	if strings.TrimSpace(m.Keywords) == "" {
		return nil
	}

	parts := strings.Split(m.Keywords, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// SetKeywordsArray stores a keyword list as a comma-joined string.
func (m *ContentMeta) SetKeywordsArray(keywords []string) {
	m.Keywords = strings.Join(keywords, ", ")
}
