package provider

import (
	"context"

	"golang.org/x/oauth2"

	"oauth-userdata/internal/userdata"
)

// OAuthProvider defines the contract every external auth provider
// must implement. Implementations hand back an authenticated API
// client and must not perform user creation, linking, or session
// management.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google", "yahoo").
	// It matches the name of the extractor for the same provider.
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// Exchange trades the authorization code for a token and returns a
	// service that calls the provider API with it.
	Exchange(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (userdata.Service, error)
}

// PKCEAuthCodeURL builds an authorization URL with an S256 challenge.
func PKCEAuthCodeURL(cfg *oauth2.Config, state, codeChallenge string) string {
	return cfg.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// ExchangePKCE exchanges code together with its PKCE verifier.
func ExchangePKCE(
	ctx context.Context,
	cfg *oauth2.Config,
	code string,
	codeVerifier string,
) (*oauth2.Token, error) {
	return cfg.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
}
