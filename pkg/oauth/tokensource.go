// Package oauth exchanges a long-lived Google refresh token for short-lived
// bearer access tokens and caches them until shortly before expiry.
package oauth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// expirySlack is subtracted from the reported token lifetime so a token is
// never used in the final moments before upstream invalidates it.
const expirySlack = 30 * time.Second

// Config holds the credential material and the token endpoint. The endpoint
// is configurable so tests can point it at a fixture server.
type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// TokenSource performs the refresh_token grant on demand. Safe for
// concurrent use; at most one exchange is in flight per source.
type TokenSource struct {
	cfg        Config
	httpClient *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewTokenSource creates a TokenSource. A nil httpClient falls back to
// http.DefaultClient.
func NewTokenSource(cfg Config, httpClient *http.Client) *TokenSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenSource{cfg: cfg, httpClient: httpClient}
}

// Token returns a valid access token, exchanging the refresh token when the
// cached one is missing or about to expire.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && time.Now().Before(ts.expires) {
		return ts.token, nil
	}

	token, lifetime, err := ts.exchange(ctx)
	if err != nil {
		return "", err
	}

	ts.token = token
	ts.expires = time.Now().Add(lifetime - expirySlack)
	return token, nil
}

func (ts *TokenSource) exchange(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("client_id", ts.cfg.ClientID)
	form.Set("client_secret", ts.cfg.ClientSecret)
	form.Set("refresh_token", ts.cfg.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := ts.httpClient.Do(req)
	if err != nil {
		return "", 0, errors.WithStack(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return "", 0, errors.Errorf("token exchange failed: %d %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	payload := struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}{}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", 0, errors.Wrap(err, "decoding token response")
	}
	if payload.AccessToken == "" {
		return "", 0, errors.New("token exchange returned an empty access token")
	}

	lifetime := time.Duration(payload.ExpiresIn) * time.Second
	if lifetime <= expirySlack {
		lifetime = expirySlack + time.Second
	}
	return payload.AccessToken, lifetime, nil
}
