package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// PaymentIntent is the provider handle the client finishes the charge with.
type PaymentIntent struct {
	ClientSecret string
}

// PaymentProvider creates a payment intent with the external processor.
// Amount is in major currency units; the adapter converts to minor units.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount float64) (*PaymentIntent, error)
}

// RecordFundingInput carries a completed contribution to be recorded.
type RecordFundingInput struct {
	Email         string
	Name          string
	Amount        float64
	TransactionID string
}

// ListFundingsFilter pages through recorded contributions.
type ListFundingsFilter struct {
	Page  int
	Limit int
}

// ListFundingsResult is a page of contributions.
type ListFundingsResult struct {
	Items      []*domain.Funding
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// FundingRepository defines persistence for contributions.
type FundingRepository interface {
	Create(ctx context.Context, f *domain.Funding) (*domain.Funding, error)
	List(ctx context.Context, filter ListFundingsFilter) ([]*domain.Funding, int64, error)
	// Total sums the amount field across all contributions.
	Total(ctx context.Context) (float64, error)
}

// FundingService defines use-case operations for contributions.
type FundingService interface {
	CreateIntent(ctx context.Context, amount float64) (*PaymentIntent, error)
	Record(ctx context.Context, input RecordFundingInput) (*domain.Funding, error)
	List(ctx context.Context, filter ListFundingsFilter) (*ListFundingsResult, error)
	Total(ctx context.Context) (float64, error)
}
