package services

import (
	"strings"
	"testing"
)

func newMetaFixture(t *testing.T) (*MetaService, *SettingsService, *ContentMetaService) {
	t.Helper()
	db := newTestDB(t)
	settings := NewSettingsService(db, newTestCache())
	metas := NewContentMetaService(db)
	return NewMetaService(settings, metas, "Acme", "https://example.com"), settings, metas
}

func TestMetaGenerate_TitleFallbackChain(t *testing.T) {
	svc, settings, metas := newMetaFixture(t)
	settings.Set("site_name", "Acme")

	post := &testPost{id: 7, title: "Hello"}

	// Display name only.
	bundle := svc.Generate(post, "https://example.com/hello")
	if bundle.Title != "Hello | Acme" {
		t.Errorf("Title = %q, want %q", bundle.Title, "Hello | Acme")
	}

	// The item's own SEO title beats the display name.
	post.seoTitle = "Hello World"
	bundle = svc.Generate(post, "https://example.com/hello")
	if bundle.Title != "Hello World | Acme" {
		t.Errorf("Title = %q, want %q", bundle.Title, "Hello World | Acme")
	}

	// A stored override beats both.
	metas.Upsert("post", 7, &ContentMetaRequest{Title: "Stored Title"})
	bundle = svc.Generate(post, "https://example.com/hello")
	if bundle.Title != "Stored Title | Acme" {
		t.Errorf("Title = %q, want %q", bundle.Title, "Stored Title | Acme")
	}
}

func TestMetaGenerate_TitleTemplate(t *testing.T) {
	svc, settings, _ := newMetaFixture(t)
	settings.Set("site_name", "Acme")
	settings.Set("title_template", "{site}: {title}")

	bundle := svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/p")
	if bundle.Title != "Acme: Post" {
		t.Errorf("Title = %q, want %q", bundle.Title, "Acme: Post")
	}
}

func TestMetaGenerate_DescriptionFallback(t *testing.T) {
	svc, settings, _ := newMetaFixture(t)
	settings.Set("default_description", "Site default")

	bundle := svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/p")
	if bundle.Description != "Site default" {
		t.Errorf("Description = %q, want site default", bundle.Description)
	}

	bundle = svc.Generate(&testPost{id: 1, title: "Post", seoDesc: "From item"}, "https://example.com/p")
	if bundle.Description != "From item" {
		t.Errorf("Description = %q, want %q", bundle.Description, "From item")
	}
}

func TestMetaGenerate_ImageOmittedWhenAbsent(t *testing.T) {
	svc, _, _ := newMetaFixture(t)

	bundle := svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/p")

	if _, ok := bundle.OpenGraph["og:image"]; ok {
		t.Error("og:image present without any image configured")
	}
	if _, ok := bundle.TwitterCard["twitter:image"]; ok {
		t.Error("twitter:image present without any image configured")
	}
	if card := bundle.TwitterCard["twitter:card"]; card != "summary" {
		t.Errorf("twitter:card = %q, want %q without image", card, "summary")
	}
}

func TestMetaGenerate_ImageAbsolutized(t *testing.T) {
	svc, settings, _ := newMetaFixture(t)
	settings.Set("default_og_image", "/img/share.png")

	bundle := svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/p")

	want := "https://example.com/img/share.png"
	if got := bundle.OpenGraph["og:image"]; got != want {
		t.Errorf("og:image = %q, want %q", got, want)
	}
	if card := bundle.TwitterCard["twitter:card"]; card != "summary_large_image" {
		t.Errorf("twitter:card = %q, want %q with image", card, "summary_large_image")
	}
}

func TestMetaGenerate_CanonicalFallback(t *testing.T) {
	svc, _, metas := newMetaFixture(t)

	// Request URL when nothing else is set.
	bundle := svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/current")
	if bundle.Canonical != "https://example.com/current" {
		t.Errorf("Canonical = %q, want request URL", bundle.Canonical)
	}

	// Item capability.
	bundle = svc.Generate(&testPost{id: 1, title: "Post", canonical: "https://example.com/canonical"}, "https://example.com/current")
	if bundle.Canonical != "https://example.com/canonical" {
		t.Errorf("Canonical = %q, want item canonical", bundle.Canonical)
	}

	// Stored override wins.
	metas.Upsert("post", 1, &ContentMetaRequest{CanonicalURL: "https://example.com/stored"})
	bundle = svc.Generate(&testPost{id: 1, title: "Post", canonical: "https://example.com/canonical"}, "https://example.com/current")
	if bundle.Canonical != "https://example.com/stored" {
		t.Errorf("Canonical = %q, want stored canonical", bundle.Canonical)
	}
}

func TestMetaGenerate_TwitterHandle(t *testing.T) {
	svc, settings, _ := newMetaFixture(t)

	bundle := svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/p")
	if _, ok := bundle.TwitterCard["twitter:site"]; ok {
		t.Error("twitter:site present without a configured handle")
	}

	// Handle is normalized to exactly one leading @.
	settings.Set("twitter_handle", "@acme")
	bundle = svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/p")
	if got := bundle.TwitterCard["twitter:site"]; got != "@acme" {
		t.Errorf("twitter:site = %q, want %q", got, "@acme")
	}

	settings.Set("twitter_handle", "acme2")
	bundle = svc.Generate(&testPost{id: 1, title: "Post"}, "https://example.com/p")
	if got := bundle.TwitterCard["twitter:site"]; got != "@acme2" {
		t.Errorf("twitter:site = %q, want %q", got, "@acme2")
	}
}

func TestMetaDefault(t *testing.T) {
	svc, settings, _ := newMetaFixture(t)
	settings.Set("site_name", "Acme")
	settings.Set("default_description", "The Acme site")

	bundle := svc.Default("https://example.com/")

	if bundle.Title != "Acme" {
		t.Errorf("Title = %q, want %q", bundle.Title, "Acme")
	}
	if bundle.Description != "The Acme site" {
		t.Errorf("Description = %q, want the default description", bundle.Description)
	}
	if bundle.Robots != "index,follow" {
		t.Errorf("Robots = %q, want %q", bundle.Robots, "index,follow")
	}
	if got := bundle.OpenGraph["og:type"]; got != "website" {
		t.Errorf("og:type = %q, want %q", got, "website")
	}
}

func TestMetaDefault_TwitterCardAlwaysSummary(t *testing.T) {
	svc, settings, _ := newMetaFixture(t)
	settings.Set("default_og_image", "/img/share.png")

	bundle := svc.Default("https://example.com/")

	// The default image feeds Open Graph only; the default twitter card
	// stays a plain summary with no image.
	if got := bundle.OpenGraph["og:image"]; got != "https://example.com/img/share.png" {
		t.Errorf("og:image = %q, want the default image", got)
	}
	if card := bundle.TwitterCard["twitter:card"]; card != "summary" {
		t.Errorf("twitter:card = %q, want %q", card, "summary")
	}
	if _, ok := bundle.TwitterCard["twitter:image"]; ok {
		t.Error("twitter:image present in the default bundle")
	}
}

func TestMetaRender(t *testing.T) {
	svc, settings, _ := newMetaFixture(t)
	settings.Set("site_name", "Acme")
	settings.Set("facebook_app_id", "12345")

	bundle := svc.Generate(&testPost{
		id:       1,
		title:    `Tom & "Jerry"`,
		seoDesc:  "Cat <meets> mouse",
		keywords: []string{"cat", "mouse"},
	}, "https://example.com/tom")
	rendered := svc.Render(bundle)

	// Interpolated values are escaped.
	if strings.Contains(rendered, `Tom & "Jerry"`) {
		t.Error("Render() emitted an unescaped title")
	}
	if !strings.Contains(rendered, "Tom &amp; &#34;Jerry&#34;") {
		t.Errorf("Render() missing escaped title:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Cat &lt;meets&gt; mouse") {
		t.Errorf("Render() missing escaped description:\n%s", rendered)
	}

	for _, want := range []string{
		`<meta name="keywords" content="cat, mouse">`,
		`<link rel="canonical" href="https://example.com/tom">`,
		`<meta name="robots" content="index,follow">`,
		`<meta property="fb:app_id" content="12345">`,
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() missing %q:\n%s", want, rendered)
		}
	}

	// No image resolved, so no image tags at all.
	if strings.Contains(rendered, "og:image") || strings.Contains(rendered, "twitter:image") {
		t.Errorf("Render() emitted image tags without an image:\n%s", rendered)
	}

	// og tags precede twitter tags.
	if strings.Index(rendered, "og:title") > strings.Index(rendered, "twitter:card") {
		t.Error("Render() emitted twitter tags before og tags")
	}
}
