package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	gocache "github.com/patrickmn/go-cache"
)

func TestSitemapRegenerate(t *testing.T) {
	sitemap := services.NewSitemapService(gocache.New(time.Hour, 0), "https://example.com")
	sitemap.AddURL("https://example.com/", services.URLOptions{})
	handler := NewSitemapHandler(sitemap)

	// Prime the cache, then add a URL the cached document cannot contain.
	if _, err := sitemap.Generate(); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	sitemap.AddURL("https://example.com/fresh", services.URLOptions{})

	router := gin.New()
	router.POST("/api/sitemap/regenerate", handler.Regenerate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/sitemap/regenerate", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	// The rebuilt document is now what /sitemap.xml serves.
	xml, _ := sitemap.Generate()
	if !strings.Contains(xml, "https://example.com/fresh") {
		t.Errorf("regenerated sitemap missing the new URL:\n%s", xml)
	}
}

func TestSitemapPing_RefusedOnLoopback(t *testing.T) {
	sitemap := services.NewSitemapService(gocache.New(time.Hour, 0), "http://localhost:8080")
	handler := NewSitemapHandler(sitemap)

	router := gin.New()
	router.POST("/api/sitemap/ping", handler.Ping)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/sitemap/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d for a loopback site", w.Code, http.StatusBadRequest)
	}

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Code != 400 {
		t.Errorf("code = %d, want 400", envelope.Code)
	}
}
