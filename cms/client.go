// Package cms is a read client for the headless CMS backing the service
// catalog, assessment schema and marketing content.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the CMS content API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new CMS client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- CMS document types ----

type ServiceOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Service struct {
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	BasePrice    float64         `json:"basePrice"`
	Options      []ServiceOption `json:"options"`
	Subscription bool            `json:"subscription"`
	Active       bool            `json:"active"`
}

type QuestionOption struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

type Question struct {
	ID         string           `json:"id"`
	CategoryID string           `json:"categoryId"`
	Type       string           `json:"type"` // multiple_choice, boolean, scale5, scale10
	Weight     float64          `json:"weight"`
	Options    []QuestionOption `json:"options,omitempty"`
}

type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type AssessmentSchema struct {
	Categories []Category `json:"categories"`
	Questions  []Question `json:"questions"`
}

// RecommendationTier is a CMS-authored content block selected by matching
// the overall score against [MinScore, MaxScore].
type RecommendationTier struct {
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	MinScore float64 `json:"minScore"`
	MaxScore float64 `json:"maxScore"`
}

type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

type Page struct {
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ---- queries ----

func (c *Client) GetServices(ctx context.Context) ([]Service, error) {
	var out []Service
	if err := c.get(ctx, "/api/services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetService(ctx context.Context, slug string) (*Service, error) {
	var out Service
	if err := c.get(ctx, "/api/services/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAssessmentSchema(ctx context.Context) (*AssessmentSchema, error) {
	var out AssessmentSchema
	if err := c.get(ctx, "/api/assessment-schema", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRecommendationTiers(ctx context.Context) ([]RecommendationTier, error) {
	var out []RecommendationTier
	if err := c.get(ctx, "/api/recommendation-tiers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.get(ctx, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPost(ctx context.Context, slug string) (*Post, error) {
	var out Post
	if err := c.get(ctx, "/api/posts/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPages(ctx context.Context) ([]Page, error) {
	var out []Page
	if err := c.get(ctx, "/api/pages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cms: unexpected status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ErrNotFound is returned when the CMS has no document for the slug.
var ErrNotFound = fmt.Errorf("cms: document not found")

// MatchTier returns the tier whose range contains score, or nil.
func MatchTier(tiers []RecommendationTier, score float64) *RecommendationTier {
	for i := range tiers {
		if score >= tiers[i].MinScore && score <= tiers[i].MaxScore {
			return &tiers[i]
		}
	}
	return nil
}
