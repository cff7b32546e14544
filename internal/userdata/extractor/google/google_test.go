package google

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oauth-userdata/internal/userdata"
	"oauth-userdata/internal/userdata/userdatatest"
)

const fullUserinfo = `{
	"id": "108204268033311374519",
	"username": "ada",
	"given_name": "Ada",
	"family_name": "Lovelace",
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"verified_email": true,
	"bio": "Analyst",
	"link": "https://plus.google.com/108204268033311374519",
	"location": {"id": "1", "name": "London"},
	"website": "home https://ada.example.com and https://notes.example.com",
	"picture": "https://lh3.googleusercontent.com/photo.jpg",
	"locale": "en",
	"hd": "example.com"
}`

func decode(t *testing.T, body string) userdata.Profile {
	t.Helper()
	p, err := userdata.DecodeProfile(ProfileEndpoint, []byte(body))
	require.NoError(t, err)
	return p
}

func TestNormalize_FullProfile(t *testing.T) {
	ud := New().Normalize(decode(t, fullUserinfo))

	assert.Equal(t, "108204268033311374519", *ud.UniqueID)
	assert.Equal(t, "ada", *ud.Username)
	assert.Equal(t, "Ada", *ud.FirstName)
	assert.Equal(t, "Lovelace", *ud.LastName)
	assert.Equal(t, "Ada Lovelace", *ud.FullName)
	assert.Equal(t, "ada@example.com", *ud.Email)
	assert.True(t, ud.VerifiedEmail)
	assert.Equal(t, "Analyst", *ud.Description)
	assert.Equal(t, "https://plus.google.com/108204268033311374519", *ud.ProfileURL)
	assert.Equal(t, "London", *ud.Location)
	assert.Equal(t, []string{"https://ada.example.com", "https://notes.example.com"}, ud.Websites)
	assert.Equal(t, "https://lh3.googleusercontent.com/photo.jpg", *ud.ImageURL)
	assert.Equal(t, map[string]any{
		"verified_email": true,
		"locale":         "en",
		"hd":             "example.com",
	}, ud.Extra)
}

func TestNormalize_MinimalProfile(t *testing.T) {
	ud := New().Normalize(decode(t, `{"id":"1","email":"a@b.com"}`))

	require.NotNil(t, ud.UniqueID)
	assert.Equal(t, "1", *ud.UniqueID)
	require.NotNil(t, ud.Email)
	assert.Equal(t, "a@b.com", *ud.Email)
	assert.Nil(t, ud.Username)
	assert.True(t, ud.VerifiedEmail)
}

func TestNormalize_EmptyProfile(t *testing.T) {
	ud := New().Normalize(userdata.Profile{})

	assert.Nil(t, ud.UniqueID)
	assert.Nil(t, ud.Username)
	assert.Nil(t, ud.FirstName)
	assert.Nil(t, ud.LastName)
	assert.Nil(t, ud.FullName)
	assert.Nil(t, ud.Email)
	assert.Nil(t, ud.Description)
	assert.Nil(t, ud.ProfileURL)
	assert.Nil(t, ud.Location)
	assert.Nil(t, ud.ImageURL)
	assert.NotNil(t, ud.Websites)
	assert.Empty(t, ud.Websites)
	assert.NotNil(t, ud.Extra)
	assert.Empty(t, ud.Extra)
	assert.True(t, ud.VerifiedEmail)
}

func TestNormalize_WrongTypes(t *testing.T) {
	p := decode(t, `{"id":null,"location":"not an object","website":42,"picture":{"url":"x"}}`)

	assert.Nil(t, UniqueID(p))
	assert.Nil(t, Location(p))
	assert.Empty(t, Websites(p))
	assert.Nil(t, ImageURL(p))
}

func TestExtra_NeverContainsConsumedKeys(t *testing.T) {
	p := decode(t, fullUserinfo)
	extra := Extra(p)
	for _, k := range consumedKeys {
		assert.NotContains(t, extra, k)
	}
	assert.Contains(t, p, "id", "profile itself is left intact")
}

func TestLoad(t *testing.T) {
	svc := userdatatest.NewService(map[string]string{ProfileEndpoint: fullUserinfo})

	p, err := New().Load(context.Background(), svc)
	require.NoError(t, err)

	assert.Equal(t, []string{ProfileEndpoint}, svc.Requests())
	assert.Equal(t, "Ada", *FirstName(p))
}

func TestLoad_TransportErrorUnmodified(t *testing.T) {
	svc := userdatatest.NewService(nil)
	want := &userdata.TransportError{Endpoint: ProfileEndpoint, StatusCode: 401, Err: errors.New("unauthorized")}
	svc.Errors[ProfileEndpoint] = want

	_, err := New().Load(context.Background(), svc)
	assert.Same(t, want, err)
}

func TestLoad_DecodeError(t *testing.T) {
	svc := userdatatest.NewService(map[string]string{ProfileEndpoint: `<html>oops</html>`})

	_, err := New().Load(context.Background(), svc)
	require.Error(t, err)

	var decErr *userdata.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, ProfileEndpoint, decErr.Endpoint)
}
