// Package service implements userdata.Service over an OAuth2
// authenticated HTTP client.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/userdata"
)

// maxBodySize bounds how much of a provider response is read.
const maxBodySize = 1 << 20

// HTTPService performs GET requests against a provider API. Relative
// endpoints are resolved against BaseURL.
type HTTPService struct {
	BaseURL string
	Client  *http.Client
}

func New(baseURL string, client *http.Client) *HTTPService {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{
		BaseURL: baseURL,
		Client:  client,
	}
}

// FromToken returns a service whose client refreshes tok through cfg.
func FromToken(
	ctx context.Context,
	cfg *oauth2.Config,
	tok *oauth2.Token,
	baseURL string,
) *HTTPService {
	return New(baseURL, cfg.Client(ctx, tok))
}

// FromAccessToken returns a service that sends a fixed bearer token.
func FromAccessToken(ctx context.Context, accessToken string, baseURL string) *HTTPService {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	return New(baseURL, oauth2.NewClient(ctx, src))
}

func (s *HTTPService) Request(ctx context.Context, endpoint string) ([]byte, error) {
	target, err := s.resolve(endpoint)
	if err != nil {
		return nil, &userdata.TransportError{Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &userdata.TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &userdata.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("provider request", map[string]any{
		"url":    target,
		"status": resp.StatusCode,
	})

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &userdata.TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("read body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &userdata.TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New(snippet(body)),
		}
	}

	return body, nil
}

func (s *HTTPService) resolve(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if s.BaseURL == "" {
		return "", fmt.Errorf("relative endpoint %q without base url", endpoint)
	}

	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	// a base without a trailing slash would drop its last path segment
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(ref).String(), nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty response"
	}
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
