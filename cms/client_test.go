package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token")
}

func TestGetServices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"slug":"pc-tune-up","title":"PC Tune-Up","basePrice":79,"active":true}]`))
	})

	services, err := client.GetServices(context.Background())
	assert.NoError(t, err)
	assert.Len(t, services, 1)
	assert.Equal(t, "pc-tune-up", services[0].Slug)
	assert.Equal(t, 79.0, services[0].BasePrice)
	assert.True(t, services[0].Active)
}

func TestGetServiceNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetService(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetAssessmentSchema(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetAssessmentSchema(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assessment-schema", r.URL.Path)
		w.Write([]byte(`{
			"categories": [{"id":"security","title":"Security"}],
			"questions": [{"id":"q1","categoryId":"security","type":"scale5","weight":2}]
		}`))
	})

	schema, err := client.GetAssessmentSchema(context.Background())
	assert.NoError(t, err)
	assert.Len(t, schema.Categories, 1)
	assert.Len(t, schema.Questions, 1)
	assert.Equal(t, 2.0, schema.Questions[0].Weight)
}

func TestMatchTier(t *testing.T) {
	tiers := []RecommendationTier{
		{Slug: "at-risk", MinScore: 0, MaxScore: 39},
		{Slug: "needs-work", MinScore: 40, MaxScore: 74},
		{Slug: "healthy", MinScore: 75, MaxScore: 100},
	}

	assert.Equal(t, "at-risk", MatchTier(tiers, 0).Slug)
	assert.Equal(t, "needs-work", MatchTier(tiers, 40).Slug)
	assert.Equal(t, "healthy", MatchTier(tiers, 100).Slug)
	assert.Nil(t, MatchTier(tiers, 39.5)) // gap between configured ranges
	assert.Nil(t, MatchTier(nil, 50))
}
