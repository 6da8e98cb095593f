package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/calltechcare/backend-go/cms"
	"github.com/stretchr/testify/assert"
)

func TestBuildSitemap(t *testing.T) {
	pages := []cms.Page{{Slug: "about", UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}}
	services := []cms.Service{
		{Slug: "pc-tune-up", Active: true},
		{Slug: "retired-service", Active: false},
	}
	posts := []cms.Post{{Slug: "wifi-tips", PublishedAt: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)}}

	body, err := BuildSitemap("https://calltechcare.com", pages, services, posts)
	assert.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "<?xml")
	assert.Contains(t, out, "<loc>https://calltechcare.com/</loc>")
	assert.Contains(t, out, "<loc>https://calltechcare.com/about</loc>")
	assert.Contains(t, out, "<lastmod>2026-03-01</lastmod>")
	assert.Contains(t, out, "<loc>https://calltechcare.com/services/pc-tune-up</loc>")
	assert.NotContains(t, out, "retired-service")
	assert.Contains(t, out, "<loc>https://calltechcare.com/blog/wifi-tips</loc>")
}

func TestBuildRSS(t *testing.T) {
	posts := []cms.Post{{
		Slug:        "wifi-tips",
		Title:       "Five Wi-Fi Tips",
		Excerpt:     "Make your network faster.",
		PublishedAt: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
	}}

	body, err := BuildRSS("https://calltechcare.com", posts)
	assert.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `<rss version="2.0">`)
	assert.Contains(t, out, "<title>Five Wi-Fi Tips</title>")
	assert.Contains(t, out, "<link>https://calltechcare.com/blog/wifi-tips</link>")
	assert.Contains(t, out, "<description>Make your network faster.</description>")
	assert.True(t, strings.Contains(out, "Sun, 10 May 2026"))
}
