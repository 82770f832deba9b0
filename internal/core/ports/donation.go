package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// CreateDonationInput carries the fields of a new donation request. The
// requester is taken from the authenticated user, never from the body.
type CreateDonationInput struct {
	RecipientName string
	BloodGroup    string
	District      string
	Upazila       string
	Hospital      string
	Address       string
	DonationDate  string
	DonationTime  string
	Message       string
}

// ListDonationsFilter selects donation requests. RequesterEmail scopes the
// listing to one owner ("my requests").
type ListDonationsFilter struct {
	Status         string
	RequesterEmail string
	Page           int
	Limit          int
}

// ListDonationsResult is a page of donation requests.
type ListDonationsResult struct {
	Items      []*domain.DonationRequest
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RespondResult reports whether a respond call transitioned the request.
// Modified is zero when the request was no longer pending; by contract a
// no-op, not an error.
type RespondResult struct {
	Modified int64
}

// DonationRepository defines persistence for donation requests.
type DonationRepository interface {
	Create(ctx context.Context, d *domain.DonationRequest) (*domain.DonationRequest, error)
	FindByID(ctx context.Context, id string) (*domain.DonationRequest, error)
	List(ctx context.Context, filter ListDonationsFilter) ([]*domain.DonationRequest, int64, error)

	// Respond sets status inprogress and attaches donor info, conditional
	// on the request still being pending. Returns modified count.
	Respond(ctx context.Context, id string, donor domain.DonorInfo) (int64, error)

	UpdateStatus(ctx context.Context, id string, status domain.DonationStatus) (int64, error)
	Delete(ctx context.Context, id string) error
}

// DonationService defines use-case operations for donation requests.
type DonationService interface {
	Create(ctx context.Context, requester *domain.User, input CreateDonationInput) (*domain.DonationRequest, error)
	Get(ctx context.Context, id string) (*domain.DonationRequest, error)
	List(ctx context.Context, filter ListDonationsFilter) (*ListDonationsResult, error)
	Respond(ctx context.Context, donor *domain.User, id string) (*RespondResult, error)

	// UpdateStatus enforces both ownership (owner or admin) and the
	// donation lifecycle transition map.
	UpdateStatus(ctx context.Context, caller *domain.User, id string, status domain.DonationStatus) error
	Delete(ctx context.Context, caller *domain.User, id string) error
}
