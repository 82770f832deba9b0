package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// Identity is the verified claim set returned by the external token issuer.
type Identity struct {
	Email string
	Name  string
}

// TokenVerifier validates a bearer credential with the identity provider and
// returns the verified identity, or domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// IdentityService turns a bearer credential into a local user record,
// creating the record on first sight and counting the login.
type IdentityService interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
