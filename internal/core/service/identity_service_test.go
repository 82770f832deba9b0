package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubVerifier struct {
	identity ports.Identity
	err      error
	calls    int
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (ports.Identity, error) {
	v.calls++
	return v.identity, v.err
}

type stubTokenCache struct {
	entries map[string]ports.Identity
	getErr  error
}

func newStubTokenCache() *stubTokenCache {
	return &stubTokenCache{entries: make(map[string]ports.Identity)}
}

func (c *stubTokenCache) Get(_ context.Context, token string) (ports.Identity, bool, error) {
	if c.getErr != nil {
		return ports.Identity{}, false, c.getErr
	}
	id, ok := c.entries[token]
	return id, ok, nil
}

func (c *stubTokenCache) Set(_ context.Context, token string, identity ports.Identity) error {
	c.entries[token] = identity
	return nil
}

// stubUserRepo implements ports.UserRepository in memory, keyed on email.
type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) UpsertLogin(_ context.Context, identity ports.Identity) (*domain.User, error) {
	u, ok := r.byEmail[identity.Email]
	if !ok {
		r.nextID++
		u = &domain.User{
			ID:     string(rune('0' + r.nextID)),
			Email:  identity.Email,
			Name:   identity.Name,
			Role:   domain.RoleCustomer,
			Status: domain.StatusActive,
		}
		r.byEmail[identity.Email] = u
	}
	u.LoginCount++
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpsertProfile(_ context.Context, input ports.UpsertProfileInput) (*domain.User, error) {
	u, ok := r.byEmail[input.Email]
	if !ok {
		u = &domain.User{Email: input.Email, Role: domain.RoleCustomer, Status: domain.StatusActive}
		r.byEmail[input.Email] = u
	}
	if input.Name != "" {
		u.Name = input.Name
	}
	if input.BloodGroup != "" {
		u.BloodGroup = input.BloodGroup
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetPendingRequest(_ context.Context, email string, req domain.RoleRequest) (int64, error) {
	u, ok := r.byEmail[email]
	if !ok {
		// A conditional update on a missing document matches nothing.
		return 0, nil
	}
	if u.RoleRequest != nil && u.RoleRequest.Status == domain.RequestPending {
		return 0, nil
	}
	clone := req
	u.RoleRequest = &clone
	return 1, nil
}

func (r *stubUserRepo) ResolveMerchantRequest(_ context.Context, id string, approve bool) (int64, error) {
	for _, u := range r.byEmail {
		if u.ID != id {
			continue
		}
		if u.RoleRequest == nil || u.RoleRequest.Type != domain.RoleMerchant || u.RoleRequest.Status != domain.RequestPending {
			return 0, nil
		}
		if approve {
			u.Role = domain.RoleMerchant
			u.RoleRequest.Status = domain.RequestApproved
		} else {
			u.Role = domain.RoleCustomer
			u.RoleRequest.Status = domain.RequestRejected
		}
		return 1, nil
	}
	return 0, nil
}

func (r *stubUserRepo) ActivateIfPending(_ context.Context, id string) (int64, error) {
	for _, u := range r.byEmail {
		if u.ID == id && u.Status == domain.StatusPending {
			u.Status = domain.StatusActive
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (int64, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			if u.Role == role {
				return 0, nil
			}
			u.Role = role
			return 1, nil
		}
	}
	return 0, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id, status string) (int64, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			if u.Status == status {
				return 0, nil
			}
			u.Status = status
			return 1, nil
		}
	}
	return 0, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.byEmail {
		if u.Role == domain.RoleAdmin {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) SearchDonors(_ context.Context, filter ports.DonorSearchFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byEmail {
		if u.Status != domain.StatusActive || u.BloodGroup == "" {
			continue
		}
		if filter.BloodGroup != "" && u.BloodGroup != filter.BloodGroup {
			continue
		}
		if filter.District != "" && u.District != filter.District {
			continue
		}
		if filter.Upazila != "" && u.Upazila != filter.Upazila {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestIdentityService_Resolve_CreatesOnFirstSight(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{identity: ports.Identity{Email: "Alice@Example.com", Name: "Alice"}}
	svc := NewIdentityService(verifier, repo, nil, zerolog.Nop())

	user, err := svc.Resolve(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != domain.RoleCustomer || user.Status != domain.StatusActive {
		t.Fatalf("wrong defaults: role=%s status=%s", user.Role, user.Status)
	}
	if user.LoginCount != 1 {
		t.Fatalf("expected login_count 1, got %d", user.LoginCount)
	}
}

func TestIdentityService_Resolve_IncrementsLoginCount(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{identity: ports.Identity{Email: "bob@example.com"}}
	svc := NewIdentityService(verifier, repo, nil, zerolog.Nop())

	for i := 1; i <= 3; i++ {
		user, err := svc.Resolve(context.Background(), "token-2")
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if user.LoginCount != int64(i) {
			t.Fatalf("after %d logins, count = %d", i, user.LoginCount)
		}
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single record, got %d", len(repo.byEmail))
	}
}

func TestIdentityService_Resolve_InvalidToken(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{err: errors.New("bad signature")}
	svc := NewIdentityService(verifier, repo, nil, zerolog.Nop())

	if _, err := svc.Resolve(context.Background(), "forged"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("empty token: expected ErrInvalidToken, got %v", err)
	}
}

func TestIdentityService_Resolve_MissingEmailClaim(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{identity: ports.Identity{Name: "No Email"}}
	svc := NewIdentityService(verifier, repo, nil, zerolog.Nop())

	if _, err := svc.Resolve(context.Background(), "token-3"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIdentityService_Resolve_CacheHitSkipsVerifierNotLoginCount(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{identity: ports.Identity{Email: "carol@example.com"}}
	cache := newStubTokenCache()
	svc := NewIdentityService(verifier, repo, cache, zerolog.Nop())

	if _, err := svc.Resolve(context.Background(), "token-4"); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	user, err := svc.Resolve(context.Background(), "token-4")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if verifier.calls != 1 {
		t.Fatalf("expected one verifier call, got %d", verifier.calls)
	}
	if user.LoginCount != 2 {
		t.Fatalf("cache hit must not skip the login-count write: count = %d", user.LoginCount)
	}
}

func TestIdentityService_Resolve_CacheErrorFallsBack(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{identity: ports.Identity{Email: "dave@example.com"}}
	cache := newStubTokenCache()
	cache.getErr = errors.New("redis down")
	svc := NewIdentityService(verifier, repo, cache, zerolog.Nop())

	if _, err := svc.Resolve(context.Background(), "token-5"); err != nil {
		t.Fatalf("resolve with broken cache: %v", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("verifier should have been consulted")
	}
}
