package handlers

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/cms"
	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/logger"
	"github.com/calltechcare/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// GetServices lists the active catalog. The Mongo snapshot is served when
// present; an empty snapshot falls through to the CMS.
func GetServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("services").Find(
		ctx,
		bson.M{"active": true},
		options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "title", Value: 1}}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch services"})
	}

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode services"})
	}

	if len(services) == 0 {
		docs, err := cmsClient.GetServices(ctx)
		if err != nil {
			logger.Log.Error("CMS fallback failed for services", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch services"})
		}
		for _, doc := range docs {
			if doc.Active {
				services = append(services, serviceFromCMS(doc))
			}
		}
	}

	return c.JSON(http.StatusOK, services)
}

// GetService returns one catalog entry by slug.
func GetService(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	service, err := lookupService(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Service not found"})
	}
	return c.JSON(http.StatusOK, service)
}

// GetPosts and GetPost are read-only pass-throughs to the CMS.
func GetPosts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	posts, err := cmsClient.GetPosts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch posts"})
	}
	return c.JSON(http.StatusOK, posts)
}

func GetPost(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := cmsClient.GetPost(ctx, c.Param("slug"))
	if err != nil {
		if err == cms.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch post"})
	}
	return c.JSON(http.StatusOK, post)
}

func serviceFromCMS(doc cms.Service) models.Service {
	opts := make([]models.ServiceOption, 0, len(doc.Options))
	for _, opt := range doc.Options {
		opts = append(opts, models.ServiceOption{Name: opt.Name, Price: opt.Price})
	}
	return models.Service{
		Slug:         doc.Slug,
		Title:        doc.Title,
		Description:  doc.Description,
		Category:     doc.Category,
		BasePrice:    doc.BasePrice,
		Options:      opts,
		Subscription: doc.Subscription,
		Active:       doc.Active,
	}
}

// ---- sitemap ----

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders sitemap.xml from CMS content at request time.
func Sitemap(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pages, err := cmsClient.GetPages(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch pages"})
	}
	services, err := cmsClient.GetServices(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch services"})
	}
	posts, err := cmsClient.GetPosts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch posts"})
	}

	body, err := BuildSitemap(config.C.SiteBaseURL, pages, services, posts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to render sitemap"})
	}
	return c.Blob(http.StatusOK, "application/xml", body)
}

// BuildSitemap renders the urlset for the site's pages, services and posts.
func BuildSitemap(base string, pages []cms.Page, services []cms.Service, posts []cms.Post) ([]byte, error) {
	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: base + "/"}},
	}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     base + "/" + p.Slug,
			LastMod: p.UpdatedAt.Format("2006-01-02"),
		})
	}
	for _, s := range services {
		if !s.Active {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: base + "/services/" + s.Slug})
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     base + "/blog/" + p.Slug,
			LastMod: p.PublishedAt.Format("2006-01-02"),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// ---- RSS ----

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// RSS renders the blog feed from CMS posts at request time.
func RSS(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	posts, err := cmsClient.GetPosts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch posts"})
	}

	body, err := BuildRSS(config.C.SiteBaseURL, posts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to render feed"})
	}
	return c.Blob(http.StatusOK, "application/rss+xml", body)
}

// BuildRSS renders an RSS 2.0 feed for the blog posts.
func BuildRSS(base string, posts []cms.Post) ([]byte, error) {
	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       "CallTechCare Blog",
			Link:        base + "/blog",
			Description: "Tech tips and updates from CallTechCare",
		},
	}
	for _, p := range posts {
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        base + "/blog/" + p.Slug,
			Description: p.Excerpt,
			PubDate:     p.PublishedAt.Format(time.RFC1123Z),
		})
	}

	body, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
