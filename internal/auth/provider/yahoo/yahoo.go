package yahoo

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"oauth-userdata/internal/auth/provider"
	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/userdata"
	"oauth-userdata/internal/userdata/service"
)

const (
	providerName = "yahoo"

	// APIBaseURL is the social API root the extractor's relative
	// endpoints resolve against.
	APIBaseURL = "https://social.yahooapis.com/v1/"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// Endpoint and BaseURL default to Yahoo's production hosts.
	Endpoint oauth2.Endpoint
	BaseURL  string
}

// Provider implements the OAuth2 authorization code flow against Yahoo.
// It returns an API client only; no user/session decisions are made here.
type Provider struct {
	oauthConfig *oauth2.Config
	baseURL     string
}

func New(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("yahoo oauth config missing required fields")
	}

	if cfg.Endpoint.TokenURL == "" {
		cfg.Endpoint = endpoints.Yahoo
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = APIBaseURL
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     cfg.Endpoint,
			Scopes:       cfg.Scopes,
		},
		baseURL: cfg.BaseURL,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL with PKCE parameters.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return provider.PKCEAuthCodeURL(p.oauthConfig, state, codeChallenge)
}

// Exchange exchanges the authorization code for a social API client.
// This method MUST NOT create users, sessions, or perform linking logic.
func (p *Provider) Exchange(
	ctx context.Context,
	code string,
	codeVerifier string,
) (userdata.Service, error) {

	token, err := provider.ExchangePKCE(ctx, p.oauthConfig, code, codeVerifier)
	if err != nil {
		logger.Error("yahoo token exchange failed", map[string]any{
			"error": err,
		})
		return nil, fmt.Errorf("yahoo token exchange failed: %w", err)
	}

	// Yahoo returns the account guid alongside the token; logged only,
	// the extractor resolves it through the API.
	logger.Info("yahoo token received", map[string]any{
		"guid_present": token.Extra("xoauth_yahoo_guid") != nil,
		"expiry_unix":  token.Expiry.Unix(),
	})

	return service.FromToken(ctx, p.oauthConfig, token, p.baseURL), nil
}
