package trakt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) AccessToken() (string, bool) {
	return s.token, s.ok
}

func newTestClient(t *testing.T, serverURL string, tokens TokenSource) *Client {
	t.Helper()
	client, err := NewClient("test-client-id", tokens, zerolog.Nop(), WithBaseURL(serverURL))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing client ID", func(t *testing.T) {
		_, err := NewClient("", nil, logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("valid config", func(t *testing.T) {
		client, err := NewClient("test-client-id", nil, logger)
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
	})

	t.Run("with options", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("test-client-id", nil, logger,
			WithHTTPClient(custom),
			WithBaseURL("http://localhost:9999/"),
			WithUserAgent("traktkit-test"))
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
		assert.Equal(t, "http://localhost:9999", client.baseURL)
		assert.Equal(t, "traktkit-test", client.userAgent)
	})
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "2", r.Header.Get("trakt-api-version"))
		assert.Equal(t, "test-client-id", r.Header.Get("trakt-api-key"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]any{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, staticTokens{token: "token-123", ok: true})

	_, err := client.Watchlist(context.Background())
	require.NoError(t, err)
}

func TestAuthorizedRequestWithoutToken(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	t.Run("signed out token source", func(t *testing.T) {
		client := newTestClient(t, server.URL, staticTokens{ok: false})

		_, err := client.Watchlist(context.Background())
		assert.ErrorIs(t, err, ErrNoAccessToken)
	})

	t.Run("nil token source", func(t *testing.T) {
		client := newTestClient(t, server.URL, nil)

		_, err := client.Watchlist(context.Background())
		assert.ErrorIs(t, err, ErrNoAccessToken)
	})

	// The request must fail before any network call is made.
	assert.Equal(t, int32(0), calls.Load())
}

func TestStatusMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.MovieSummary(context.Background(), "missing-movie")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.Code)
	assert.True(t, statusErr.IsNotFound())
	assert.False(t, statusErr.IsUnauthorized())
	assert.Contains(t, statusErr.Body, "not found")
}

func TestEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.MovieSummary(context.Background(), "some-movie")
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, server.URL, nil)

	_, err := client.MovieSummary(context.Background(), "some-movie")
	require.Error(t, err)

	// Transport failures are propagated, never classified as status errors.
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestExpectedStatusOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var items SyncItems
		require.NoError(t, json.NewDecoder(r.Body).Decode(&items))
		require.Len(t, items.Movies, 1)
		assert.Equal(t, 123, items.Movies[0].IDs.Trakt)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"added": map[string]any{"movies": 1},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, staticTokens{token: "token-123", ok: true})

	summary, err := client.AddToWatchlist(context.Background(), SyncItems{
		Movies: []SyncItem{{IDs: IDs{Trakt: 123}}},
	})
	require.NoError(t, err)
	assert.Contains(t, summary, "added")
}

func TestExpectedStatusOverrideMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 instead of the expected 201
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, staticTokens{token: "token-123", ok: true})

	_, err := client.AddToWatchlist(context.Background(), SyncItems{})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 200, statusErr.Code)
}

func TestCheckinMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkin", r.URL.Path)

		var body map[string]SyncItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 123, body["movie"].IDs.Trakt)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 999})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, staticTokens{token: "token-123", ok: true})

	result, err := client.CheckinMovie(context.Background(), IDs{Trakt: 123})
	require.NoError(t, err)
	assert.Contains(t, result, "id")
}

func TestPagedPath(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		page  int
		limit int
		want  string
	}{
		{
			name: "no pagination",
			path: "/movies/trending",
			want: "/movies/trending",
		},
		{
			name:  "page and limit",
			path:  "/movies/trending",
			page:  2,
			limit: 25,
			want:  "/movies/trending?limit=25&page=2",
		},
		{
			name:  "existing query",
			path:  "/search/movie?query=dune",
			page:  1,
			limit: 10,
			want:  "/search/movie?query=dune&limit=10&page=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagedPath(tt.path, tt.page, tt.limit))
		})
	}
}

func TestCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.MovieSummary(ctx, "some-movie")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
