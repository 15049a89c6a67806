package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hyroplugins/seo-optimizer/internal/models"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database, migrated and empty.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Setting{}, &models.Redirect{}, &models.ContentMeta{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestCache() *gocache.Cache {
	return gocache.New(time.Hour, 0)
}

// testPost is a content item with the full capability surface.
type testPost struct {
	id        uint
	title     string
	seoTitle  string
	seoDesc   string
	keywords  []string
	image     string
	canonical string
	url       string
	author    string
	created   time.Time
	updated   time.Time
}

func (p *testPost) TypeTag() string { return "post" }
func (p *testPost) ItemID() uint { return p.id }
func (p *testPost) DisplayName() string { return p.title }
func (p *testPost) SeoTitle() string { return p.seoTitle }
func (p *testPost) SeoDescription() string { return p.seoDesc }
func (p *testPost) SeoKeywords() []string { return p.keywords }
func (p *testPost) SeoImage() string { return p.image }
func (p *testPost) CanonicalURL() string { return p.canonical }
func (p *testPost) URL() string { return p.url }
func (p *testPost) AuthorName() string { return p.author }
func (p *testPost) CreatedTime() time.Time { return p.created }
func (p *testPost) ModifiedTime() time.Time { return p.updated }

// testProduct carries price and rating capabilities.
type testProduct struct {
	id     uint
	name   string
	price  float64
	rating float64
	count  int
}

func (p *testProduct) TypeTag() string { return "product" }
func (p *testProduct) ItemID() uint { return p.id }
func (p *testProduct) DisplayName() string { return p.name }
func (p *testProduct) Price() float64 { return p.price }
func (p *testProduct) Rating() (float64, int) {
	return p.rating, p.count
}

// testComment exposes only the minimal surface; its type tag maps to no
// schema and it answers no optional capability.
type testComment struct {
	id   uint
	body string
}

func (c *testComment) TypeTag() string { return "comment" }
func (c *testComment) ItemID() uint { return c.id }
func (c *testComment) DisplayName() string { return c.body }
