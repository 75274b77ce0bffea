// Package session derives an upload session from a basic-auth probe.
//
// The canvas host has no token endpoint. A successful GET on the canvas page
// returns a session cookie in Set-Cookie and inlines the CSRF token in a
// script block, which a TokenExtractor scrapes out of the body.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"darkstatic/internal/apperr"
	"darkstatic/internal/models"
)

const DefaultTimeout = 30 * time.Second

type Authenticator struct {
	httpClient *http.Client
	extractor  TokenExtractor
}

type Option func(*Authenticator)

func WithHTTPClient(c *http.Client) Option {
	return func(a *Authenticator) {
		a.httpClient = c
	}
}

func WithExtractor(e TokenExtractor) Option {
	return func(a *Authenticator) {
		a.extractor = e
	}
}

func WithTimeout(d time.Duration) Option {
	return func(a *Authenticator) {
		a.httpClient = &http.Client{Timeout: d}
	}
}

func New(opts ...Option) *Authenticator {
	a := &Authenticator{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		extractor:  DefaultExtractor(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate performs one probe round trip. Nothing is cached or retried.
func (a *Authenticator) Authenticate(ctx context.Context, host models.HostTarget, creds models.Credentials) (*models.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host.AuthURL(), nil)
	if err != nil {
		return nil, apperr.TransportFailure(fmt.Errorf("failed to build auth request: %w", err))
	}
	req.SetBasicAuth(creds.Username, creds.Password)

	slog.Debug("Authenticating", "url", host.AuthURL(), "user", creds.Username)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperr.TransportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.AuthFailure(resp.StatusCode)
	}

	cookie := resp.Header.Get("Set-Cookie")
	if cookie == "" {
		return nil, apperr.MissingSessionCookie()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.TransportFailure(fmt.Errorf("failed to read auth response: %w", err))
	}

	token, err := a.extractor.Extract(body)
	if err != nil {
		return nil, apperr.TokenExtractionFailure(err)
	}

	return &models.Session{
		Cookie:    cookie,
		CSRFToken: token,
	}, nil
}
