package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// TokenCache abstracts the short-lived verification cache (Redis). A cache
// hit skips the round trip to the identity provider; it never skips the
// login-count write.
type TokenCache interface {
	Get(ctx context.Context, token string) (ports.Identity, bool, error)
	Set(ctx context.Context, token string, identity ports.Identity) error
}

type identityService struct {
	verifier ports.TokenVerifier
	users    ports.UserRepository
	cache    TokenCache // optional
	log      zerolog.Logger
}

// NewIdentityService returns an IdentityService. cache may be nil.
func NewIdentityService(verifier ports.TokenVerifier, users ports.UserRepository, cache TokenCache, log zerolog.Logger) ports.IdentityService {
	return &identityService{verifier: verifier, users: users, cache: cache, log: log}
}

// Resolve verifies the credential and upserts the local account in a single
// atomic write keyed on the unique email: created with defaults on first
// sight, login_count incremented on every later sight.
func (s *identityService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	identity, cached := s.cachedIdentity(ctx, token)
	if !cached {
		var err error
		identity, err = s.verifier.Verify(ctx, token)
		if err != nil {
			return nil, domain.ErrInvalidToken
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, token, identity); err != nil {
				s.log.Warn().Err(err).Msg("token cache set failed")
			}
		}
	}

	if identity.Email == "" {
		return nil, domain.ErrInvalidToken
	}
	identity.Email = domain.NormalizeEmail(identity.Email)

	user, err := s.users.UpsertLogin(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("email", user.Email).Int64("login_count", user.LoginCount).Msg("credential resolved")
	return user, nil
}

func (s *identityService) cachedIdentity(ctx context.Context, token string) (ports.Identity, bool) {
	if s.cache == nil {
		return ports.Identity{}, false
	}
	identity, ok, err := s.cache.Get(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("token cache lookup failed, verifying directly")
		return ports.Identity{}, false
	}
	return identity, ok
}
