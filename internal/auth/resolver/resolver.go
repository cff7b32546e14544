package resolver

import (
	"context"

	"oauth-userdata/internal/auth"
)

// Resolver maps a provider identity to an internal user id and stores the
// normalized profile that came with it.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (string, error)
}
