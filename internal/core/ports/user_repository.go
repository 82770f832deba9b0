package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// UpsertProfileInput carries the self-service profile fields accepted by the
// registration upsert. Role and status are deliberately absent: grants are
// never client-settable.
type UpsertProfileInput struct {
	Email       string
	Name        string
	BloodGroup  string
	District    string
	Upazila     string
	ShopName    string
	ShopAddress string
}

// ListUsersFilter carries query parameters for the admin user listing.
// Admin accounts are always excluded by the repository.
type ListUsersFilter struct {
	Role   string // optional
	Status string // optional
	Page   int    // 1-based
	Limit  int    // capped by the service
}

// DonorSearchFilter selects active donors. BloodGroup is the already
// normalized value ("A+", "O-", ...); empty fields are not filtered on.
type DonorSearchFilter struct {
	BloodGroup string
	District   string
	Upazila    string
}

// UserRepository defines persistence operations for user accounts.
// The conditional mutations return the number of documents modified so
// services can distinguish a no-op from a transition.
type UserRepository interface {
	// UpsertLogin atomically creates the user on first sight (role customer,
	// status active, login_count 1) or increments login_count, keyed on the
	// unique email. Returns the post-update record.
	UpsertLogin(ctx context.Context, identity Identity) (*domain.User, error)

	// UpsertProfile creates or updates the self-service profile fields,
	// never touching role, status, role_request, or login_count of an
	// existing record. Returns the post-update record.
	UpsertProfile(ctx context.Context, input UpsertProfileInput) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// SetPendingRequest installs a pending role request, conditional on no
	// other request being pending. Returns modified count (0 = lost race).
	SetPendingRequest(ctx context.Context, email string, req domain.RoleRequest) (int64, error)

	// ResolveMerchantRequest settles a pending merchant request: approve
	// sets role=merchant and request status approved, reject reverts role
	// to customer and sets request status rejected. Conditional on the
	// request being of type merchant and still pending.
	ResolveMerchantRequest(ctx context.Context, id string, approve bool) (int64, error)

	// ActivateIfPending promotes status pending→active; any other status is
	// left untouched.
	ActivateIfPending(ctx context.Context, id string) (int64, error)

	UpdateRole(ctx context.Context, id string, role domain.Role) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) (int64, error)

	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Delete(ctx context.Context, id string) error

	SearchDonors(ctx context.Context, filter DonorSearchFilter) ([]*domain.User, error)
}
