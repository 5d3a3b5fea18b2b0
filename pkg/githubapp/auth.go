// Package githubapp authenticates as a GitHub App installation and exposes the
// small set of read-only API calls the dashboard renders.
//
// Authentication follows the GitHub App flow: a short-lived RS256 JWT signed
// with the app private key is exchanged for an installation access token. The
// installation token is cached and refreshed shortly before it expires.
package githubapp

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/creds"
)

const (
	// DefaultBaseURL is the public GitHub API endpoint.
	DefaultBaseURL = "https://api.github.com"

	// apiVersion is sent with every request per GitHub's versioning scheme.
	apiVersion = "2022-11-28"

	// jwtClockSkew is subtracted from the issued-at claim to tolerate clock
	// drift between this host and GitHub.
	jwtClockSkew = 60 * time.Second

	// jwtLifetime is the app JWT validity window. GitHub caps it at 10 minutes.
	jwtLifetime = 10 * time.Minute

	// tokenRefreshMargin renews the installation token this long before expiry.
	tokenRefreshMargin = 5 * time.Minute

	requestTimeout = 10 * time.Second
)

var (
	// ErrTokenExchange indicates GitHub rejected the installation token request.
	ErrTokenExchange = errors.New("githubapp: installation token exchange failed")

	errPrivateKeyParse = errors.New("githubapp: failed to parse private key")
)

// Config configures an Authenticator.
type Config struct {
	// Bundle holds the app credentials. It must be valid.
	Bundle creds.Bundle

	// BaseURL overrides the GitHub API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the HTTP client used for API calls.
	HTTPClient *http.Client

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Authenticator exchanges app credentials for installation access tokens.
type Authenticator struct {
	bundle     creds.Bundle
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	privateKey *rsa.PrivateKey

	mu          sync.Mutex
	cachedToken string
	tokenExpiry time.Time
}

// NewAuthenticator validates the bundle, parses the private key, and returns
// an authenticator ready to mint installation tokens.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	err := cfg.Bundle.Validate()
	if err != nil {
		return nil, err
	}

	privateKey, parseErr := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.Bundle.PrivateKey))
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %w", errPrivateKeyParse, parseErr)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Authenticator{
		bundle:     cfg.Bundle,
		baseURL:    baseURL,
		httpClient: httpClient,
		now:        now,
		privateKey: privateKey,
	}, nil
}

// Token returns a valid installation access token, exchanging a fresh one when
// the cached token is absent or within the refresh margin of expiry.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cachedToken != "" && a.now().Before(a.tokenExpiry.Add(-tokenRefreshMargin)) {
		return a.cachedToken, nil
	}

	token, expiry, err := a.exchangeToken(ctx)
	if err != nil {
		return "", err
	}

	a.cachedToken = token
	a.tokenExpiry = expiry

	return token, nil
}

// --- internals ---

func (a *Authenticator) signJWT() (string, error) {
	now := a.now()

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-jwtClockSkew)),
		ExpiresAt: jwt.NewNumericDate(now.Add(jwtLifetime)),
		Issuer:    a.bundle.AppID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(a.privateKey)
	if err != nil {
		return "", fmt.Errorf("githubapp: failed to sign app jwt: %w", err)
	}

	return signed, nil
}

func (a *Authenticator) exchangeToken(ctx context.Context) (string, time.Time, error) {
	appJWT, err := a.signJWT()
	if err != nil {
		return "", time.Time{}, err
	}

	url := fmt.Sprintf(
		"%s/app/installations/%s/access_tokens",
		a.baseURL,
		a.bundle.InstallationID,
	)

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(nil))
	if reqErr != nil {
		return "", time.Time{}, fmt.Errorf("githubapp: failed to build token request: %w", reqErr)
	}

	req.Header.Set("Authorization", "Bearer "+appJWT)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, doErr := a.httpClient.Do(req)
	if doErr != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrTokenExchange, doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return "", time.Time{}, fmt.Errorf("%w: unexpected status %d", ErrTokenExchange, resp.StatusCode)
	}

	var payload struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}

	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)
	if decodeErr != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrTokenExchange, decodeErr)
	}

	if payload.Token == "" {
		return "", time.Time{}, fmt.Errorf("%w: empty token in response", ErrTokenExchange)
	}

	return payload.Token, payload.ExpiresAt, nil
}
