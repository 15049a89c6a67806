package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/models"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newRedirectRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Redirect{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := gin.New()
	router.Use(Redirect(services.NewRedirectService(db, "https://example.com")))
	router.GET("/page", func(c *gin.Context) {
		c.String(200, "page content")
	})
	router.GET("/api/settings", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router, db
}

func TestRedirect_MatchIssuesRedirect(t *testing.T) {
	router, db := newRedirectRouter(t)
	db.Create(&models.Redirect{OldURL: "/moved", NewURL: "/page", StatusCode: 301, IsActive: true})
	db.Create(&models.Redirect{OldURL: "/temporary", NewURL: "/page", StatusCode: 302, IsActive: true})

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/moved", http.StatusMovedPermanently},
		{"/temporary", http.StatusFound},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", tt.path, nil)
		router.ServeHTTP(w, req)

		if w.Code != tt.wantStatus {
			t.Errorf("GET %s status = %d, want %d", tt.path, w.Code, tt.wantStatus)
		}
		if loc := w.Header().Get("Location"); loc != "/page" {
			t.Errorf("GET %s Location = %q, want %q", tt.path, loc, "/page")
		}
	}
}

func TestRedirect_NoMatchPassesThrough(t *testing.T) {
	router, _ := newRedirectRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/page", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "page content" {
		t.Errorf("body = %q, want the handler output", w.Body.String())
	}
}

func TestRedirect_InactiveRuleIgnored(t *testing.T) {
	router, db := newRedirectRouter(t)
	db.Create(&models.Redirect{OldURL: "/page", NewURL: "/elsewhere", StatusCode: 301, IsActive: false})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/page", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for an inactive rule", w.Code, http.StatusOK)
	}
}

func TestRedirect_ExemptPaths(t *testing.T) {
	router, db := newRedirectRouter(t)
	// A hostile rule targeting an API path must never fire.
	db.Create(&models.Redirect{OldURL: "/api/settings", NewURL: "/hijacked", StatusCode: 301, IsActive: true})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/settings", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for an exempt path", w.Code, http.StatusOK)
	}
}
