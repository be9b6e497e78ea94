package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// tokenPath is the OAuth2 client-credentials endpoint.
const tokenPath = "/v1/security/oauth2/token"

// tokenExpiryMargin renews tokens slightly before the server-side
// expiry so in-flight requests never race the cutoff.
const tokenExpiryMargin = 30 * time.Second

// tokenResponse is the OAuth2 grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// tokenManager caches the OAuth2 access token across searches and
// renews it when it expires.
type tokenManager struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
	clock     timeutil.Clock

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenManager(baseURL, apiKey, apiSecret string, client *http.Client, clock timeutil.Clock) *tokenManager {
	return &tokenManager{
		baseURL:   baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    client,
		clock:     clock,
	}
}

// Token returns a valid access token, fetching a new one when the
// cached token is missing or expired.
func (m *tokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.clock.Now().Before(m.expiresAt) {
		return m.token, nil
	}

	token, expiresIn, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.expiresAt = m.clock.Now().Add(time.Duration(expiresIn)*time.Second - tokenExpiryMargin)
	return m.token, nil
}

// Invalidate discards the cached token so the next call fetches a
// fresh one. Called when the API rejects a request as unauthorized.
func (m *tokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
}

// fetch performs the client-credentials grant.
func (m *tokenManager) fetch(ctx context.Context) (string, int, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.apiKey)
	form.Set("client_secret", m.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, resilience.NewStatusError(resp.StatusCode, resp.Status)
	}

	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return "", 0, fmt.Errorf("token response has no access token")
	}
	return out.AccessToken, out.ExpiresIn, nil
}
