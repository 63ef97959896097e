package trakt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Trakt API host
	DefaultBaseURL = "https://api.trakt.tv"
	// apiVersion is sent on every request via the trakt-api-version header
	apiVersion = "2"

	maxErrorBodyLen = 512
)

// TokenSource supplies the current access token for authorized requests.
// The second return value is false when no token is stored (signed out).
type TokenSource interface {
	AccessToken() (string, bool)
}

// Client represents a Trakt API client
type Client struct {
	baseURL    string
	clientID   string
	tokens     TokenSource
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new Trakt client. tokens may be nil, in which case
// only unauthorized endpoints are usable.
func NewClient(clientID string, tokens TokenSource, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client ID is required", ErrInvalidConfig)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(options.baseURL, "/"),
		clientID:   clientID,
		tokens:     tokens,
		httpClient: httpClient,
		userAgent:  options.userAgent,
		logger:     logger,
	}, nil
}

// request describes one API call for the shared pipeline. A zero status
// means 200 is expected.
type request struct {
	method     string
	path       string
	authorized bool
	body       any
	status     int
}

// newRequest builds an outbound HTTP request. Bare resource paths are
// prefixed with the API base URL; absolute URLs pass through unchanged.
// Authorized requests fail with ErrNoAccessToken before any network call
// when no token is stored.
func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	target := r.path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(target, "/")
	}
	if _, err := url.Parse(target); err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", target, err)
	}

	var bodyReader io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	method := r.method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", apiVersion)
	if c.clientID != "" {
		req.Header.Set("trakt-api-key", c.clientID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if r.authorized {
		if c.tokens == nil {
			return nil, ErrNoAccessToken
		}
		token, ok := c.tokens.AccessToken()
		if !ok {
			return nil, ErrNoAccessToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do issues the request and classifies the exchange: transport errors are
// propagated unchanged, a status other than the expected one becomes a
// StatusError carrying the actual code, and an empty body on the expected
// status becomes ErrEmptyBody. The raw body is returned for decoding.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	wantStatus := r.status
	if wantStatus == 0 {
		wantStatus = http.StatusOK
	}

	if resp.StatusCode != wantStatus {
		snippet := string(body)
		if len(snippet) > maxErrorBodyLen {
			snippet = snippet[:maxErrorBodyLen]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(snippet)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("Trakt API request completed")

	return body, nil
}

// pagedPath appends page/limit query parameters when they are set.
func pagedPath(path string, page, limit int) string {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

// defaultTimeout mirrors the timeout used across our service clients.
const defaultTimeout = 30 * time.Second
