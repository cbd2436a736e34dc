package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-replay-cache/internal/httpserver"
	"go-replay-cache/internal/models"
	"go-replay-cache/internal/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	server := httpserver.NewServer(memory.New(), zaptest.NewLogger(t))
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_PersistAndLoadRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL, "run-1", zaptest.NewLogger(t))

	recorded := models.CacheMap{
		"https://a/b{}": {
			URL:        "https://a/b",
			Body:       "hi",
			Headers:    map[string]string{"content-type": "text/plain"},
			StatusCode: 200,
			StatusText: "OK",
		},
	}

	ctx := context.Background()
	require.NoError(t, c.PersistCache(ctx, recorded))

	loaded, err := c.LoadCache(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	entry := loaded["https://a/b{}"]
	assert.Equal(t, "https://a/b", entry.URL)
	assert.Equal(t, "hi", entry.Body)
	assert.Equal(t, 200, entry.StatusCode)
	assert.Equal(t, "OK", entry.StatusText)
}

func TestClient_LoadMissingRecording(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL, "no-such-run", zaptest.NewLogger(t))

	_, err := c.LoadCache(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_GeneratesRunID(t *testing.T) {
	c := New("http://localhost:9090", "", zaptest.NewLogger(t))
	assert.NotEmpty(t, c.RunID())

	other := New("http://localhost:9090", "", zaptest.NewLogger(t))
	assert.NotEqual(t, c.RunID(), other.RunID())
}

// Client traffic carries the bypass marker so an installed interceptor
// never records its own persistence calls.
func TestClient_RequestsCarryBypassHeader(t *testing.T) {
	var seen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-E2E-Server-Request"))
		_, _ = w.Write([]byte("{}"))
	}))
	defer ts.Close()

	c := New(ts.URL, "run-1", zaptest.NewLogger(t))

	ctx := context.Background()
	_, err := c.LoadCache(ctx)
	require.NoError(t, err)
	require.NoError(t, c.PersistCache(ctx, models.CacheMap{}))

	require.Len(t, seen, 2)
	for _, value := range seen {
		assert.Equal(t, "true", value)
	}
}
