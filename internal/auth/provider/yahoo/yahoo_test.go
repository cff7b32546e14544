package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"oauth-userdata/internal/userdata/extractor"
	yahooextractor "oauth-userdata/internal/userdata/extractor/yahoo"
)

func TestNew_RequiresFields(t *testing.T) {
	_, err := New(Config{ClientID: "id"})
	assert.Error(t, err)
}

func TestAuthCodeURL(t *testing.T) {
	p, err := New(Config{ClientID: "id", ClientSecret: "secret", RedirectURL: "https://app/cb"})
	require.NoError(t, err)

	raw := p.AuthCodeURL("state-1", "challenge-1")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "api.login.yahoo.com", u.Host)
	q := u.Query()
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "challenge-1", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, "id", q.Get("client_id"))
}

// The exchanged service must resolve the extractor's relative endpoints
// against the social API and carry the access token.
func TestExchange_ServiceFeedsExtractor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "code-1", r.Form.Get("code"))
		assert.Equal(t, "verifier-1", r.Form.Get("code_verifier"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"bearer","expires_in":3600,"xoauth_yahoo_guid":"G1"}`))
	})
	mux.HandleFunc("/v1/me/guid", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"guid":{"value":"G1"}}`))
	})
	mux.HandleFunc("/v1/user/G1/profile", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"profile":{"guid":"G1","givenName":"Grace","familyName":"Hopper"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p, err := New(Config{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  "https://app/cb",
		Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"},
		BaseURL:      srv.URL + "/v1/",
	})
	require.NoError(t, err)

	svc, err := p.Exchange(context.Background(), "code-1", "verifier-1")
	require.NoError(t, err)

	ud, err := extractor.Extract(context.Background(), yahooextractor.New(), svc)
	require.NoError(t, err)

	assert.Equal(t, "G1", *ud.UniqueID)
	assert.Equal(t, "Grace Hopper", *ud.FullName)
}

func TestExchange_TokenError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	p, err := New(Config{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  "https://app/cb",
		Endpoint:     oauth2.Endpoint{TokenURL: srv.URL},
	})
	require.NoError(t, err)

	_, err = p.Exchange(context.Background(), "bad", "v")
	assert.ErrorContains(t, err, "yahoo token exchange failed")
}
