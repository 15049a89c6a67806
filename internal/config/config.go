package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Site     SiteConfig     `yaml:"site"`
	Sitemap  SitemapConfig  `yaml:"sitemap"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// JWTConfig holds the shared secret used to verify admin API tokens.
// Tokens are issued by the host application with the same secret.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// SiteConfig describes the site this service attaches SEO metadata to.
// BaseURL is used for canonical URLs, the sitemap location and the
// fully-qualified redirect match variant.
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

// SitemapConfig controls the optional scheduled sitemap refresh.
// RefreshCron is a cron expression; empty disables the scheduler.
type SitemapConfig struct {
	RefreshCron string `yaml:"refresh_cron"`
	PingOnCron  bool   `yaml:"ping_on_cron"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "seo-optimizer.db",
		},
		JWT: JWTConfig{
			Secret: "seo-optimizer-secret-change-in-production",
		},
		Site: SiteConfig{
			Name:    "My Site",
			BaseURL: "http://localhost:8080",
		},
		Sitemap: SitemapConfig{
			RefreshCron: "",
			PingOnCron:  false,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if name := os.Getenv("SITE_NAME"); name != "" {
		c.Site.Name = name
	}
	if baseURL := os.Getenv("SITE_BASE_URL"); baseURL != "" {
		c.Site.BaseURL = baseURL
	}
	if cron := os.Getenv("SITEMAP_REFRESH_CRON"); cron != "" {
		c.Sitemap.RefreshCron = cron
	}
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
