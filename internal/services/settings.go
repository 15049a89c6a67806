package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyroplugins/seo-optimizer/internal/models"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	settingTTL       = time.Hour
	settingKeyPrefix = "seo_setting_"
	settingsAllKey   = "seo_settings_all"
)

// settingEntry is the cached read-through result for one key. Misses are
// cached too, so a hot missing key does not hammer storage.
type settingEntry struct {
	found bool
	value string
}

// SettingsService reads and writes the seo_settings table through a
// TTL cache. Reads are cache-aside; Set writes storage synchronously and
// invalidates only that key's cache entry. The All() snapshot is cached
// separately and is not invalidated by Set; it expires on its own TTL.
type SettingsService struct {
	db    *gorm.DB
	cache *gocache.Cache
}

func NewSettingsService(db *gorm.DB, cache *gocache.Cache) *SettingsService {
	return &SettingsService{db: db, cache: cache}
}

// Get returns the stored value for key, or defaultValue when no row
// exists. The default is never persisted. An existing row with an empty
// value returns the empty string, not the default.
func (s *SettingsService) Get(key, defaultValue string) string {
	entry := s.lookup(key)
	if !entry.found {
		return defaultValue
	}
	return entry.value
}

func (s *SettingsService) lookup(key string) settingEntry {
	cacheKey := settingKeyPrefix + key
	if cached, found := s.cache.Get(cacheKey); found {
		if entry, ok := cached.(settingEntry); ok {
			return entry
		}
	}

	var setting models.Setting
	entry := settingEntry{}
	// Map condition so the reserved column name is quoted per dialect.
	if err := s.db.Where(map[string]interface{}{"key": key}).First(&setting).Error; err == nil {
		entry = settingEntry{found: true, value: setting.Value}
	}
	s.cache.Set(cacheKey, entry, settingTTL)
	return entry
}

// Set upserts the value for key, then invalidates that key's cache entry.
// Concurrent sets on the same key are last-write-wins at the storage layer.
func (s *SettingsService) Set(key, value string) error {
	var setting models.Setting
	err := s.db.Where(map[string]interface{}{"key": key}).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = models.Setting{Key: key, Value: value}
		err = s.db.Create(&setting).Error
	} else if err == nil {
		err = s.db.Model(&setting).Update("value", value).Error
	}
	if err != nil {
		return err
	}

	s.cache.Delete(settingKeyPrefix + key)
	return nil
}

// settingRules describes the admin-editable keys and their constraints.
var settingRules = map[string]struct {
	Required bool
	MaxLen   int
}{
	"site_name":           {Required: true, MaxLen: 255},
	"title_template":      {Required: true, MaxLen: 255},
	"default_description": {MaxLen: 500},
	"default_og_image":    {MaxLen: 500},
	"twitter_handle":      {MaxLen: 255},
	"facebook_app_id":     {MaxLen: 255},
	"sitemap_enabled":     {},
	"robots_content":      {Required: true},
}

// ValidateSettings checks a batch update and returns field-level messages.
// Unknown keys are rejected so typos never create orphan rows.
func ValidateSettings(values map[string]string) map[string]string {
	fields := make(map[string]string)
	for key, value := range values {
		rule, known := settingRules[key]
		if !known {
			fields[key] = "unknown setting"
			continue
		}
		if rule.Required && strings.TrimSpace(value) == "" {
			fields[key] = key + " is required"
			continue
		}
		if rule.MaxLen > 0 && len(value) > rule.MaxLen {
			fields[key] = fmt.Sprintf("%s must be at most %d characters", key, rule.MaxLen)
			continue
		}
		if key == "sitemap_enabled" && value != "0" && value != "1" {
			fields[key] = "sitemap_enabled must be 0 or 1"
		}
	}
	return fields
}

// UpdateAll applies a validated batch of settings.
func (s *SettingsService) UpdateAll(values map[string]string) error {
	for key, value := range values {
		if err := s.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// All returns every stored setting as a key/value map, cached as a whole.
func (s *SettingsService) All() (map[string]string, error) {
	if cached, found := s.cache.Get(settingsAllKey); found {
		if all, ok := cached.(map[string]string); ok {
			return all, nil
		}
	}

	var settings []models.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, err
	}

	all := make(map[string]string, len(settings))
	for _, setting := range settings {
		all[setting.Key] = setting.Value
	}

	s.cache.Set(settingsAllKey, all, settingTTL)
	return all, nil
}
