package services

import (
	"strings"

	"github.com/hyroplugins/seo-optimizer/internal/models"
	"github.com/hyroplugins/seo-optimizer/pkg/response"
	"gorm.io/gorm"
)

// ContentMetaService manages the per-item SEO override rows keyed by
// (type tag, item id). Rows are created lazily on first write.
type ContentMetaService struct {
	db *gorm.DB
}

func NewContentMetaService(db *gorm.DB) *ContentMetaService {
	return &ContentMetaService{db: db}
}

// Find returns the stored meta for an item, or nil when none exists.
// Absence is not an error; the meta generator falls back to defaults.
func (s *ContentMetaService) Find(typeTag string, itemID uint) *models.ContentMeta {
	var meta models.ContentMeta
	err := s.db.Where("model_type = ? AND model_id = ?", typeTag, itemID).First(&meta).Error
	if err != nil {
		return nil
	}
	return &meta
}

// Get is the admin-facing lookup; it reports absence as a not-found error.
func (s *ContentMetaService) Get(typeTag string, itemID uint) (*models.ContentMeta, error) {
	meta := s.Find(typeTag, itemID)
	if meta == nil {
		return nil, response.NewNotFound("content meta not found")
	}
	return meta, nil
}

type ContentMetaRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Keywords     []string `json:"keywords"`
	OGImage      string   `json:"og_image"`
	CanonicalURL string   `json:"canonical_url"`
	Robots       string   `json:"robots"`
	SchemaType   string   `json:"schema_type"`
	SchemaData   string   `json:"schema_data"`
}

func (r *ContentMetaRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if len(r.Title) > 255 {
		fields["title"] = "title must be at most 255 characters"
	}
	if len(r.OGImage) > 500 {
		fields["og_image"] = "og_image must be at most 500 characters"
	}
	if len(r.CanonicalURL) > 500 {
		fields["canonical_url"] = "canonical_url must be at most 500 characters"
	}
	return fields
}

// Upsert creates or updates the meta row for an item.
func (s *ContentMetaService) Upsert(typeTag string, itemID uint, req *ContentMetaRequest) (*models.ContentMeta, error) {
	robots := strings.TrimSpace(req.Robots)
	if robots == "" {
		robots = "index,follow"
	}

	meta := s.Find(typeTag, itemID)
	if meta == nil {
		meta = &models.ContentMeta{ModelType: typeTag, ModelID: itemID}
	}

	meta.Title = req.Title
	meta.Description = req.Description
	meta.SetKeywordsArray(req.Keywords)
	meta.OGImage = req.OGImage
	meta.CanonicalURL = req.CanonicalURL
	meta.Robots = robots
	meta.SchemaType = req.SchemaType
	meta.SchemaData = req.SchemaData

	if err := s.db.Save(meta).Error; err != nil {
		return nil, err
	}
	return meta, nil
}

// Delete removes the meta row for an item. Called by the owning item's
// deletion path; missing rows are reported so callers can ignore them.
func (s *ContentMetaService) Delete(typeTag string, itemID uint) error {
	result := s.db.Where("model_type = ? AND model_id = ?", typeTag, itemID).
		Delete(&models.ContentMeta{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("content meta not found")
	}
	return nil
}
