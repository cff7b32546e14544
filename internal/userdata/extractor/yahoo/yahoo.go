package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"oauth-userdata/internal/userdata"
	"oauth-userdata/internal/userdata/urls"
)

const (
	extractorName = "yahoo"

	// Endpoints are relative to the social API base URL.
	GUIDEndpoint    = "me/guid?format=json"
	ProfileEndpoint = "user/%s/profile?format=json"
)

var consumedKeys = []string{
	"guid",
	"nickname",
	"givenName",
	"familyName",
	"emails",
	"bio",
	"profileUrl",
	"location",
	"website",
	"image",
}

// Extractor maps Yahoo social profile responses onto userdata.UserData.
// Loading takes two calls: the account guid, then the profile by guid.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Name returns the provider identifier used by the registry.
func (e *Extractor) Name() string {
	return extractorName
}

func (e *Extractor) Load(ctx context.Context, svc userdata.Service) (userdata.Profile, error) {
	guid, err := loadGUID(ctx, svc)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(ProfileEndpoint, url.PathEscape(guid))
	raw, err := svc.Request(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	body, err := userdata.DecodeProfile(endpoint, raw)
	if err != nil {
		return nil, err
	}

	profile := body.Object("profile")
	if profile == nil {
		return nil, &userdata.DecodeError{
			Endpoint: endpoint,
			Err:      errors.New("response has no profile object"),
		}
	}

	return profile, nil
}

func loadGUID(ctx context.Context, svc userdata.Service) (string, error) {
	raw, err := svc.Request(ctx, GUIDEndpoint)
	if err != nil {
		return "", err
	}

	body, err := userdata.DecodeProfile(GUIDEndpoint, raw)
	if err != nil {
		return "", err
	}

	guid := body.String("guid", "value")
	if guid == nil || *guid == "" {
		return "", &userdata.DecodeError{
			Endpoint: GUIDEndpoint,
			Err:      errors.New("response has no guid.value"),
		}
	}

	return *guid, nil
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

func UniqueID(p userdata.Profile) *string    { return p.String("guid") }
func Username(p userdata.Profile) *string    { return p.String("nickname") }
func FirstName(p userdata.Profile) *string   { return p.String("givenName") }
func LastName(p userdata.Profile) *string    { return p.String("familyName") }
func Email(p userdata.Profile) *string       { return p.String("emails", "0", "handle") }
func Description(p userdata.Profile) *string { return p.String("bio") }
func ProfileURL(p userdata.Profile) *string  { return p.String("profileUrl") }
func Location(p userdata.Profile) *string    { return p.String("location") }
func ImageURL(p userdata.Profile) *string    { return p.String("image", "imageUrl") }

// FullName joins given and family name; nil unless both are present.
func FullName(p userdata.Profile) *string {
	given, family := FirstName(p), LastName(p)
	if given == nil || family == nil {
		return nil
	}
	full := *given + " " + *family
	return &full
}

// VerifiedEmail is always true; Yahoo only returns confirmed handles.
func VerifiedEmail(userdata.Profile) bool { return true }

func Websites(p userdata.Profile) []string {
	s := p.String("website")
	if s == nil {
		return []string{}
	}
	return urls.Extract(*s)
}

func Extra(p userdata.Profile) map[string]any {
	return p.Without(consumedKeys...)
}
