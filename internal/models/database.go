package models

import (
	"fmt"

	"github.com/hyroplugins/seo-optimizer/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&Setting{},
		&Redirect{},
		&ContentMeta{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// DefaultRobotsContent is the robots.txt body served when no
// robots_content setting has been stored.
const DefaultRobotsContent = "User-agent: *\nDisallow:"

// SeedDefaultSettings inserts the default settings rows once, at first
// startup. Existing keys are left untouched.
func SeedDefaultSettings(siteName string) error {
	defaults := []Setting{
		{Key: "site_name", Value: siteName},
		{Key: "title_template", Value: "{title} | {site}"},
		{Key: "default_description", Value: ""},
		{Key: "default_og_image", Value: ""},
		{Key: "twitter_handle", Value: ""},
		{Key: "facebook_app_id", Value: ""},
		{Key: "sitemap_enabled", Value: "1"},
		{Key: "robots_content", Value: DefaultRobotsContent},
	}

	for _, s := range defaults {
		var count int64
		if err := DB.Model(&Setting{}).Where(map[string]interface{}{"key": s.Key}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
