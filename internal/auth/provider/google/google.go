package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"oauth-userdata/internal/auth/provider"
	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/userdata"
	"oauth-userdata/internal/userdata/service"
)

const (
	providerName = "google"
	issuer       = "https://accounts.google.com"
)

type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

// New discovers Google's OIDC configuration. The userinfo endpoint the
// extractor calls is absolute, so the returned service has no base URL.
func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
	scopes []string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       scopes,
		},
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: clientID}),
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

// Exchange trades the code for a token. An id_token, when Google sends
// one, must verify against the client id.
func (p *Provider) Exchange(
	ctx context.Context,
	code string,
	codeVerifier string,
) (userdata.Service, error) {

	token, err := provider.ExchangePKCE(ctx, p.oauthConfig, code, codeVerifier)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		idToken, err := p.verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, fmt.Errorf("google id_token verification failed: %w", err)
		}

		logger.Info("google id_token verified", map[string]any{
			"issuer":      idToken.Issuer,
			"audience":    idToken.Audience,
			"expiry_unix": idToken.Expiry.Unix(),
		})
	}

	return service.FromToken(ctx, p.oauthConfig, token, ""), nil
}
