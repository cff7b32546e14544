package auth

import (
	"errors"

	"oauth-userdata/internal/userdata"
)

var ErrMissingUniqueID = errors.New("provider profile has no unique id")

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "google", "yahoo"
	ProviderUserID string // provider-scoped unique user identifier
	Email          string // empty when the provider returned none
	EmailVerified  bool   // whether provider asserts email ownership
	Profile        *userdata.UserData
}

// NewIdentity builds an identity from a normalized profile.
func NewIdentity(provider string, ud *userdata.UserData) (*Identity, error) {
	if ud == nil || ud.UniqueID == nil || *ud.UniqueID == "" {
		return nil, ErrMissingUniqueID
	}

	id := &Identity{
		Provider:       provider,
		ProviderUserID: *ud.UniqueID,
		Profile:        ud,
	}
	if ud.Email != nil {
		id.Email = *ud.Email
		id.EmailVerified = ud.VerifiedEmail
	}
	return id, nil
}
