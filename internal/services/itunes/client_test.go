package itunes

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/killallgit/rewise-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchResponse = `{
	"resultCount": 4,
	"results": [{
		"wrapperType": "track",
		"kind": "podcast",
		"collectionId": 1469663053,
		"artistName": "W. Curtis Preston (Mr. Backup)",
		"collectionName": "The Backup Wrap-Up",
		"feedUrl": "https://feeds.captivate.fm/backupwrapup/",
		"artworkUrl100": "https://example.com/artwork100.jpg",
		"artworkUrl600": "https://example.com/artwork600.jpg"
	}, {
		"wrapperType": "track",
		"kind": "podcast",
		"collectionId": 2,
		"collectionName": "No Feed"
	}, {
		"wrapperType": "track",
		"kind": "podcast",
		"collectionId": 3,
		"feedUrl": "https://feeds.example.com/anonymous.xml",
		"artworkUrl100": "https://example.com/small.jpg"
	}, {
		"wrapperType": "track",
		"kind": "podcast",
		"collectionId": 4,
		"collectionName": "Bad Feed",
		"feedUrl": "javascript:alert(1)"
	}]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	return server, client
}

func TestClient_Search(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "backup wrap", r.URL.Query().Get("term"))
		assert.Equal(t, "podcast", r.URL.Query().Get("entity"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponse))
	})

	podcasts, err := client.Search(context.Background(), "  backup wrap ")
	require.NoError(t, err)
	require.Len(t, podcasts, 2)

	first := podcasts[0]
	assert.Equal(t, "The Backup Wrap-Up", first.PodcastName)
	assert.Equal(t, "https://feeds.captivate.fm/backupwrapup/", first.FeedURL)
	assert.Equal(t, "W. Curtis Preston (Mr. Backup)", first.ArtistName)
	require.NotNil(t, first.Artwork)
	assert.Equal(t, "https://example.com/artwork600.jpg", *first.Artwork)

	second := podcasts[1]
	assert.Equal(t, "Unknown", second.PodcastName)
	assert.Equal(t, "Unknown", second.ArtistName)
	require.NotNil(t, second.Artwork)
	assert.Equal(t, "https://example.com/small.jpg", *second.Artwork)

	metrics := client.GetMetrics()
	assert.Equal(t, int64(1), metrics["requests"])
	assert.Equal(t, int64(2), metrics["dropped"])
	assert.Equal(t, int64(0), metrics["errors"])
}

func TestClient_Search_BlankTerm(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a blank term")
	})

	for _, term := range []string{"", "   ", "\t\n"} {
		podcasts, err := client.Search(context.Background(), term)
		assert.Nil(t, podcasts)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}
}

func TestClient_Search_ResponseShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr error
	}{
		{name: "missing results", body: `{"resultCount": 0}`, wantLen: 0},
		{name: "null results", body: `{"resultCount": 0, "results": null}`, wantLen: 0},
		{name: "results is an object", body: `{"results": {"feedUrl": "https://x.example.com/f"}}`, wantLen: 0},
		{name: "empty results", body: `{"resultCount": 0, "results": []}`, wantLen: 0},
		{name: "non-object elements skipped", body: `{"results": [1, "two", null, {"feedUrl": "https://x.example.com/f"}]}`, wantLen: 1},
		{name: "invalid json", body: `{"results": [`, wantErr: apperr.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			podcasts, err := client.Search(context.Background(), "anything")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, podcasts)
			assert.Len(t, podcasts, tt.wantLen)
		})
	}
}

func TestClient_Search_UpstreamStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := client.Search(context.Background(), "anything")

		assert.ErrorIs(t, err, apperr.ErrUpstream)
		assert.Equal(t, http.StatusBadGateway, apperr.HTTPStatus(err))
		assert.Equal(t, "iTunes API error", apperr.Message(err))

		var upstream apperr.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, status, upstream.StatusCode)
	}
}

func TestClient_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := client.Search(context.Background(), "slow")

	assert.ErrorIs(t, err, apperr.ErrTimeout)
	assert.Equal(t, http.StatusGatewayTimeout, apperr.HTTPStatus(err))
}

func TestClient_Search_SaturatedLimiterTimesOut(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:           server.URL,
		Timeout:           100 * time.Millisecond,
		RequestsPerMinute: 1,
		BurstSize:         1,
	})

	_, err := client.Search(context.Background(), "first")
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Search(context.Background(), "second")

	assert.ErrorIs(t, err, apperr.ErrTimeout)
	assert.Equal(t, http.StatusGatewayTimeout, apperr.HTTPStatus(err))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Search_Gzip(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(searchResponse))
		_ = gz.Close()
	})

	podcasts, err := client.Search(context.Background(), "backup")
	require.NoError(t, err)
	assert.Len(t, podcasts, 2)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://itunes.example.com/"})

	assert.Equal(t, "https://itunes.example.com", client.config.BaseURL)
	assert.Equal(t, 250, client.config.RequestsPerMinute)
	assert.Equal(t, 5, client.config.BurstSize)
	assert.Equal(t, 10*time.Second, client.config.Timeout)
	assert.Equal(t, DefaultUserAgent, client.config.UserAgent)
}
