package google

import (
	"context"

	"oauth-userdata/internal/userdata"
	"oauth-userdata/internal/userdata/urls"
)

const (
	extractorName = "google"

	// ProfileEndpoint is the OAuth2 v1 userinfo resource.
	ProfileEndpoint = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// consumedKeys are the userinfo keys mapped onto named fields.
var consumedKeys = []string{
	"id",
	"username",
	"given_name",
	"family_name",
	"name",
	"email",
	"bio",
	"link",
	"location",
	"website",
	"picture",
}

// Extractor maps Google userinfo responses onto userdata.UserData.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Name returns the provider identifier used by the registry.
func (e *Extractor) Name() string {
	return extractorName
}

// Load fetches the userinfo document.
func (e *Extractor) Load(ctx context.Context, svc userdata.Service) (userdata.Profile, error) {
	raw, err := svc.Request(ctx, ProfileEndpoint)
	if err != nil {
		return nil, err
	}
	return userdata.DecodeProfile(ProfileEndpoint, raw)
}

func (e *Extractor) Normalize(p userdata.Profile) *userdata.UserData {
	return &userdata.UserData{
		UniqueID:      UniqueID(p),
		Username:      Username(p),
		FirstName:     FirstName(p),
		LastName:      LastName(p),
		FullName:      FullName(p),
		Email:         Email(p),
		VerifiedEmail: VerifiedEmail(p),
		Description:   Description(p),
		ProfileURL:    ProfileURL(p),
		Location:      Location(p),
		Websites:      Websites(p),
		ImageURL:      ImageURL(p),
		Extra:         Extra(p),
	}
}

func UniqueID(p userdata.Profile) *string    { return p.String("id") }
func Username(p userdata.Profile) *string    { return p.String("username") }
func FirstName(p userdata.Profile) *string   { return p.String("given_name") }
func LastName(p userdata.Profile) *string    { return p.String("family_name") }
func FullName(p userdata.Profile) *string    { return p.String("name") }
func Email(p userdata.Profile) *string       { return p.String("email") }
func Description(p userdata.Profile) *string { return p.String("bio") }
func ProfileURL(p userdata.Profile) *string  { return p.String("link") }
func Location(p userdata.Profile) *string    { return p.String("location", "name") }
func ImageURL(p userdata.Profile) *string    { return p.String("picture") }

// VerifiedEmail is always true: the address is the Google account itself.
func VerifiedEmail(userdata.Profile) bool { return true }

// Websites returns the URLs found in the free-text website field.
func Websites(p userdata.Profile) []string {
	s := p.String("website")
	if s == nil {
		return []string{}
	}
	return urls.Extract(*s)
}

// Extra returns everything not mapped onto a named field.
func Extra(p userdata.Profile) map[string]any {
	return p.Without(consumedKeys...)
}
