package services

import (
	"strings"

	"github.com/hyroplugins/seo-optimizer/internal/models"
	"github.com/hyroplugins/seo-optimizer/pkg/logger"
	"github.com/hyroplugins/seo-optimizer/pkg/response"
	"gorm.io/gorm"
)

// RedirectService resolves inbound paths against the seo_redirects table
// and backs the admin CRUD surface.
type RedirectService struct {
	db      *gorm.DB
	baseURL string
}

func NewRedirectService(db *gorm.DB, baseURL string) *RedirectService {
	return &RedirectService{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolution is the outcome of a successful redirect match.
type Resolution struct {
	Target     string
	StatusCode int
}

// Resolve returns the redirect for requestPath, or nil when no active rule
// matches. A rule matches when its old_url equals the bare path, the path
// with a leading slash, or the fully-qualified URL of the path. When
// several active rules match, the lowest id wins. A successful match
// increments the rule's hit counter in SQL; a failed increment is logged
// and never blocks the redirect.
func (s *RedirectService) Resolve(requestPath string) *Resolution {
	bare := strings.TrimPrefix(requestPath, "/")
	variants := []string{
		bare,
		"/" + bare,
		s.baseURL + "/" + bare,
	}

	var rule models.Redirect
	err := s.db.
		Where("is_active = ?", true).
		Where("old_url IN ?", variants).
		Order("id ASC").
		First(&rule).Error
	if err != nil {
		return nil
	}

	if err := s.db.Model(&models.Redirect{}).
		Where("id = ?", rule.ID).
		UpdateColumn("hits", gorm.Expr("hits + ?", 1)).Error; err != nil {
		logger.Warn().Err(err).Uint("redirect_id", rule.ID).Msg("failed to increment redirect hits")
	}

	return &Resolution{Target: rule.NewURL, StatusCode: rule.StatusCode}
}

// --- Admin CRUD ---

type RedirectListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

type RedirectListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.Redirect `json:"items"`
}

func (s *RedirectService) List(req *RedirectListRequest) (*RedirectListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Redirect{})
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("old_url LIKE ? OR new_url LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.Redirect
	err := query.
		Order("id DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &RedirectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

type RedirectRequest struct {
	OldURL     string `json:"old_url"`
	NewURL     string `json:"new_url"`
	StatusCode int    `json:"status_code"`
	IsActive   *bool  `json:"is_active"`
}

// Validate returns field-level messages; an empty map means the request
// is acceptable and may reach storage.
func (r *RedirectRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(r.OldURL) == "" {
		fields["old_url"] = "old_url is required"
	} else if len(r.OldURL) > 500 {
		fields["old_url"] = "old_url must be at most 500 characters"
	}
	if strings.TrimSpace(r.NewURL) == "" {
		fields["new_url"] = "new_url is required"
	} else if len(r.NewURL) > 500 {
		fields["new_url"] = "new_url must be at most 500 characters"
	}
	if r.StatusCode != 301 && r.StatusCode != 302 {
		fields["status_code"] = "status_code must be 301 or 302"
	}
	return fields
}

func (s *RedirectService) Create(req *RedirectRequest) (*models.Redirect, error) {
	rule := models.Redirect{
		OldURL:     req.OldURL,
		NewURL:     req.NewURL,
		StatusCode: req.StatusCode,
		IsActive:   true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.db.Create(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *RedirectService) Update(id uint, req *RedirectRequest) (*models.Redirect, error) {
	var rule models.Redirect
	if err := s.db.First(&rule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NewNotFound("redirect not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"old_url":     req.OldURL,
		"new_url":     req.NewURL,
		"status_code": req.StatusCode,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&rule).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// Delete removes a rule entirely. This is the only way the hit counter
// ever goes away; it is never decremented in place.
func (s *RedirectService) Delete(id uint) error {
	result := s.db.Delete(&models.Redirect{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("redirect not found")
	}
	return nil
}

// Toggle flips a rule's active flag.
func (s *RedirectService) Toggle(id uint) (*models.Redirect, error) {
	var rule models.Redirect
	if err := s.db.First(&rule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NewNotFound("redirect not found")
		}
		return nil, err
	}

	if err := s.db.Model(&rule).Update("is_active", !rule.IsActive).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}
