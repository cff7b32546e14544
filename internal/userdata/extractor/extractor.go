package extractor

import (
	"context"

	"oauth-userdata/internal/userdata"
)

// Extractor maps one provider's raw profile onto userdata.UserData.
// Load talks to the provider; Normalize is pure and never fails.
type Extractor interface {
	// Name returns the provider identifier (e.g. "google", "yahoo").
	Name() string

	// Load fetches the raw provider profile. Transport errors from svc
	// are returned unmodified.
	Load(ctx context.Context, svc userdata.Service) (userdata.Profile, error)

	// Normalize projects the raw profile onto the normalized fields.
	Normalize(p userdata.Profile) *userdata.UserData
}

// Extract loads the profile once and normalizes it.
func Extract(
	ctx context.Context,
	e Extractor,
	svc userdata.Service,
) (*userdata.UserData, error) {

	p, err := e.Load(ctx, svc)
	if err != nil {
		return nil, err
	}

	return e.Normalize(p), nil
}
