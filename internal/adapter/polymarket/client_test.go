package polymarket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEventsDecodesArrayResponse(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "false", r.URL.Query().Get("closed"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "101",
				"slug": "will-ai-pass",
				"title": "Will AI pass the bar exam?",
				"description": "Resolves yes if an AI passes.",
				"tags": [{"id": "1", "label": "AI"}, {"id": "2", "name": "Tech"}],
				"liquidity": "12500.5",
				"volume": 80000,
				"endDate": "2026-01-01T00:00:00Z"
			},
			{"id": "102", "slug": "untitled", "title": ""}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	events, err := client.OpenEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, "101", got.ID)
	assert.Equal(t, "Will AI pass the bar exam?", got.Title)
	assert.Equal(t, []string{"AI", "Tech"}, got.Tags)
	assert.Equal(t, 12500.5, got.Liquidity)
	assert.Equal(t, 80000.0, got.Volume)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, 2026, got.EndDate.Year())
	assert.Equal(t, "https://polymarket.com/event/will-ai-pass", got.URL())

	// Second call is served from cache.
	_, err = client.OpenEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestOpenEventsDecodesWrappedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"id": "5", "title": "Will rates drop this year?"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	events, err := client.OpenEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Will rates drop this year?", events[0].Title)
	assert.Equal(t, "https://polymarket.com/event/5", events[0].URL())
}

func TestOpenEventsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.OpenEvents(context.Background())
	assert.Error(t, err)
}
