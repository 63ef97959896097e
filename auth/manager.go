// Package auth owns the OAuth2 token lifecycle for the Trakt API:
// the authorization-code exchange, expiration tracking, and the
// refresh-token exchange. Credentials live in an injected SecretStore;
// the expiration date lives in an injected Settings area.
//
// Token commits are all-or-nothing: a failed exchange leaves the stored
// credential untouched. Concurrent Refresh calls are coalesced through a
// single-flight group, so racing callers share one exchange instead of
// overwriting each other's tokens.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTokenURL is the Trakt OAuth token endpoint
	DefaultTokenURL = "https://api.trakt.tv/oauth/token"
	// authorizeBaseURL is the page a user visits to grant access
	authorizeBaseURL = "https://trakt.tv/oauth/authorize"

	maxErrorBodyLen = 512
)

// Common errors
var (
	// ErrNotConfigured indicates the client credentials were not provided
	ErrNotConfigured = errors.New("client credentials not configured")
	// ErrNoRefreshToken indicates a refresh was attempted with no stored refresh token
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrEmptyBody indicates the token endpoint returned no body
	ErrEmptyBody = errors.New("empty token response body")
)

// StatusError is returned when the token endpoint answers with a status
// other than 200.
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("token exchange failed: status %d", e.Code)
	}
	return fmt.Sprintf("token exchange failed: status %d: %s", e.Code, e.Body)
}

// Manager drives the credential state machine: signed out, signed in with
// a valid token, signed in with an expired token. It satisfies
// trakt.TokenSource.
type Manager struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string

	secrets  SecretStore
	settings Settings

	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
	onSignIn   func()

	group singleflight.Group

	mu            sync.Mutex
	expiresAt     time.Time
	expiresLoaded bool
}

// NewManager creates a token lifecycle manager. secrets and settings are
// required; client credentials may be empty, in which case exchanges fail
// with ErrNotConfigured.
func NewManager(clientID, clientSecret, redirectURI string, secrets SecretStore, settings Settings, logger zerolog.Logger, opts ...ManagerOption) (*Manager, error) {
	if secrets == nil {
		return nil, fmt.Errorf("secret store is required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings store is required")
	}

	m := &Manager{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		tokenURL:     DefaultTokenURL,
		secrets:      secrets,
		settings:     settings,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithHTTPClient replaces the HTTP client used for token exchanges.
func WithHTTPClient(client *http.Client) ManagerOption {
	return func(m *Manager) {
		if client != nil {
			m.httpClient = client
		}
	}
}

// WithTokenURL overrides the token endpoint, mainly for tests.
func WithTokenURL(tokenURL string) ManagerOption {
	return func(m *Manager) {
		if tokenURL != "" {
			m.tokenURL = tokenURL
		}
	}
}

// WithNow replaces the clock, mainly for tests.
func WithNow(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSignInHook registers a callback invoked after a successful
// authorization-code exchange.
func WithSignInHook(hook func()) ManagerOption {
	return func(m *Manager) {
		m.onSignIn = hook
	}
}

// tokenRequest is the JSON body sent to the token endpoint.
type tokenRequest struct {
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	GrantType    string `json:"grant_type"`
}

// tokenResponse is the envelope the token endpoint returns. ExpiresIn is
// a pointer so a missing field is distinguishable from zero.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    *int64 `json:"expires_in"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	CreatedAt    int64  `json:"created_at,omitempty"`
}

// AuthorizeURL returns the URL a user visits to grant this application
// access. The authorization code Trakt redirects back with is then passed
// to ExchangeCode.
func (m *Manager) AuthorizeURL() string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", m.clientID)
	params.Set("redirect_uri", m.redirectURI)
	return authorizeBaseURL + "?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access/refresh token
// pair and commits it. On any failure the stored credential is untouched.
func (m *Manager) ExchangeCode(ctx context.Context, code string) error {
	if err := m.ensureConfigured(); err != nil {
		return err
	}
	if code == "" {
		return fmt.Errorf("authorization code is required")
	}

	token, err := m.exchange(ctx, tokenRequest{
		Code:         code,
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
		RedirectURI:  m.redirectURI,
		GrantType:    "authorization_code",
	})
	if err != nil {
		return err
	}

	if err := m.commit(token); err != nil {
		return err
	}

	m.logger.Info().Msg("Signed in to Trakt")
	if m.onSignIn != nil {
		m.onSignIn()
	}
	return nil
}

// Refresh trades the stored refresh token for a new token pair and
// commits it. Concurrent calls are coalesced: only one exchange is in
// flight at a time and every caller receives its outcome. On failure the
// stale credential remains stored.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.group.Do("refresh", func() (any, error) {
		return nil, m.refresh(ctx)
	})
	return err
}

func (m *Manager) refresh(ctx context.Context) error {
	if err := m.ensureConfigured(); err != nil {
		return err
	}

	refreshToken, err := m.secrets.Get(SecretRefreshToken)
	if errors.Is(err, ErrSecretNotFound) {
		return ErrNoRefreshToken
	}
	if err != nil {
		return fmt.Errorf("failed to read refresh token: %w", err)
	}

	token, err := m.exchange(ctx, tokenRequest{
		RefreshToken: string(refreshToken),
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
		RedirectURI:  m.redirectURI,
		GrantType:    "refresh_token",
	})
	if err != nil {
		return err
	}

	if err := m.commit(token); err != nil {
		return err
	}

	m.logger.Debug().Msg("Refreshed Trakt access token")
	return nil
}

// NeedsRefresh reports whether the recorded expiration date has passed.
// It is a pure read: false when no expiration has ever been recorded.
func (m *Manager) NeedsRefresh() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadExpiryLocked()
	if m.expiresAt.IsZero() {
		return false
	}
	return !m.now().Before(m.expiresAt)
}

// RefreshIfNeeded refreshes the access token only when the recorded
// expiration date has passed.
func (m *Manager) RefreshIfNeeded(ctx context.Context) error {
	if !m.NeedsRefresh() {
		return nil
	}
	return m.Refresh(ctx)
}

// AccessToken implements trakt.TokenSource. ok is false when signed out.
func (m *Manager) AccessToken() (string, bool) {
	value, err := m.secrets.Get(SecretAccessToken)
	if err != nil {
		return "", false
	}
	return string(value), true
}

// SignedIn reports whether an access token is stored.
func (m *Manager) SignedIn() bool {
	_, ok := m.AccessToken()
	return ok
}

// SignOut clears the stored token pair and expiration date.
func (m *Manager) SignOut() error {
	if err := m.secrets.Delete(SecretAccessToken); err != nil {
		return fmt.Errorf("failed to delete access token: %w", err)
	}
	if err := m.secrets.Delete(SecretRefreshToken); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	if err := m.settings.DeleteTime(SettingExpiration); err != nil {
		return fmt.Errorf("failed to delete expiration date: %w", err)
	}

	m.mu.Lock()
	m.expiresAt = time.Time{}
	m.expiresLoaded = true
	m.mu.Unlock()

	m.logger.Info().Msg("Signed out of Trakt")
	return nil
}

func (m *Manager) ensureConfigured() error {
	if m.clientID == "" || m.clientSecret == "" || m.redirectURI == "" {
		return ErrNotConfigured
	}
	return nil
}

// exchange posts the grant to the token endpoint and decodes the token
// envelope. No credential state is touched here.
func (m *Manager) exchange(ctx context.Context, grant tokenRequest) (*tokenResponse, error) {
	payload, err := json.Marshal(grant)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxErrorBodyLen {
			snippet = snippet[:maxErrorBodyLen]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("token response missing refresh_token")
	}
	if token.ExpiresIn == nil {
		return nil, fmt.Errorf("token response missing expires_in")
	}

	return &token, nil
}

// commit stores the token pair and expiration date as one unit. If any
// write fails the previous values are restored so a partial credential is
// never left behind.
func (m *Manager) commit(token *tokenResponse) error {
	expiresAt := m.now().Add(time.Duration(*token.ExpiresIn) * time.Second)

	prevAccess, accessErr := m.secrets.Get(SecretAccessToken)
	prevRefresh, refreshErr := m.secrets.Get(SecretRefreshToken)
	prevExpiry, hadExpiry := m.settings.GetTime(SettingExpiration)

	restoreAccess := func() {
		if accessErr != nil {
			_ = m.secrets.Delete(SecretAccessToken)
		} else {
			_ = m.secrets.Set(SecretAccessToken, prevAccess)
		}
	}
	restoreRefresh := func() {
		if refreshErr != nil {
			_ = m.secrets.Delete(SecretRefreshToken)
		} else {
			_ = m.secrets.Set(SecretRefreshToken, prevRefresh)
		}
	}

	if err := m.secrets.Set(SecretAccessToken, []byte(token.AccessToken)); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := m.secrets.Set(SecretRefreshToken, []byte(token.RefreshToken)); err != nil {
		restoreAccess()
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	if err := m.settings.SetTime(SettingExpiration, expiresAt); err != nil {
		restoreAccess()
		restoreRefresh()
		if hadExpiry {
			_ = m.settings.SetTime(SettingExpiration, prevExpiry)
		}
		return fmt.Errorf("failed to store expiration date: %w", err)
	}

	m.mu.Lock()
	m.expiresAt = expiresAt
	m.expiresLoaded = true
	m.mu.Unlock()

	return nil
}

// loadExpiryLocked lazily populates the cached expiration date from the
// settings area. Callers must hold m.mu.
func (m *Manager) loadExpiryLocked() {
	if m.expiresLoaded {
		return
	}
	if t, ok := m.settings.GetTime(SettingExpiration); ok {
		m.expiresAt = t
	}
	m.expiresLoaded = true
}
