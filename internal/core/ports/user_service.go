package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// ListUsersResult is a page of non-admin accounts.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService owns the role/status state machine and the admin account
// operations. Actor is the authenticated admin performing the change; it is
// recorded in the audit trail.
type UserService interface {
	// RegisterOrUpdate is the unauthenticated profile upsert behind
	// POST /auth/add-user.
	RegisterOrUpdate(ctx context.Context, input UpsertProfileInput) (*domain.User, error)

	// RequestMerchant installs a pending merchant role request for the
	// caller. Fails with domain.ErrRoleRequestPending while an earlier
	// request awaits a decision.
	RequestMerchant(ctx context.Context, user *domain.User) (*domain.User, error)

	// ApproveMerchant and RejectMerchant settle a pending merchant request.
	// Both fail with domain.ErrNoRoleRequest when no pending merchant
	// request exists, never silently succeed.
	ApproveMerchant(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
	RejectMerchant(ctx context.Context, actor *domain.User, id string) (*domain.User, error)

	// SetRole and SetStatus are the direct admin mutations; repeating one
	// with an unchanged value is a no-op, not an error.
	SetRole(ctx context.Context, actor *domain.User, id string, role domain.Role) (*domain.User, error)
	SetStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.User, error)

	List(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)
	Delete(ctx context.Context, actor *domain.User, id string) error

	// SearchDonors applies blood-group normalization to the encoded group
	// before querying ("Ap" → "A+"). Empty filter fields are ignored.
	SearchDonors(ctx context.Context, encodedGroup, district, upazila string) ([]*domain.User, error)
}
