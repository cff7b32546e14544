package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oauth-userdata/internal/userdata"
)

func TestRequest_RelativeEndpointWithBearer(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"guid":{"value":"abc"}}`))
	}))
	defer srv.Close()

	svc := FromAccessToken(context.Background(), "tok-123", srv.URL+"/v1/")

	body, err := svc.Request(context.Background(), "me/guid?format=json")
	require.NoError(t, err)

	assert.JSONEq(t, `{"guid":{"value":"abc"}}`, string(body))
	assert.Equal(t, "/v1/me/guid", gotPath)
	assert.Equal(t, "format=json", gotQuery)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestRequest_BaseWithoutTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	for _, base := range []string{srv.URL + "/v1", srv.URL + "/v1/"} {
		_, err := New(base, srv.Client()).Request(context.Background(), "me/guid?format=json")
		require.NoError(t, err, base)
		assert.Equal(t, "/v1/me/guid", gotPath, base)
	}
}

func TestRequest_AbsoluteEndpointIgnoresBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/v1/userinfo", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := New("https://unused.invalid/", srv.Client())

	_, err := svc.Request(context.Background(), srv.URL+"/oauth2/v1/userinfo")
	require.NoError(t, err)
}

func TestRequest_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := New(srv.URL, srv.Client())

	_, err := svc.Request(context.Background(), "/userinfo")
	require.Error(t, err)

	var tErr *userdata.TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, http.StatusUnauthorized, tErr.StatusCode)
	assert.Equal(t, "/userinfo", tErr.Endpoint)
	assert.Contains(t, tErr.Error(), "invalid_token")
	assert.ErrorIs(t, err, userdata.ErrTransport)
}

func TestRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Request(context.Background(), "/userinfo")
	require.Error(t, err)

	var tErr *userdata.TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Zero(t, tErr.StatusCode)
}

func TestRequest_RelativeWithoutBase(t *testing.T) {
	_, err := New("", nil).Request(context.Background(), "me/guid")
	assert.ErrorIs(t, err, userdata.ErrTransport)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "empty response", snippet(nil))
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, snippet(long), 203)
}
