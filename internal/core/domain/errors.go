package domain

import "errors"

var (
	// Authentication / authorization.
	ErrInvalidToken    = errors.New("invalid or missing credential")
	ErrForbidden       = errors.New("access forbidden")
	ErrAccountInactive = errors.New("account not approved yet")

	// Role-request state machine.
	ErrRoleRequestPending = errors.New("role request already pending")
	ErrNoRoleRequest      = errors.New("no matching role request")

	// Lifecycle status fields.
	ErrInvalidTransition = errors.New("invalid status transition")

	// Semantic input checks that live below the request validator.
	ErrInvalidInput = errors.New("invalid input")

	// Not-found sentinels, one per aggregate.
	ErrUserNotFound     = errors.New("user not found")
	ErrDonationNotFound = errors.New("donation request not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrBlogNotFound     = errors.New("blog not found")
)
