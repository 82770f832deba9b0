package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

type fundingService struct {
	repo     ports.FundingRepository
	provider ports.PaymentProvider
	log      zerolog.Logger
}

// NewFundingService returns a FundingService.
func NewFundingService(repo ports.FundingRepository, provider ports.PaymentProvider, log zerolog.Logger) ports.FundingService {
	return &fundingService{repo: repo, provider: provider, log: log}
}

// CreateIntent delegates to the payment provider and hands the client
// secret back to the caller. Nothing is persisted at this point; the
// contribution is recorded separately once the charge succeeds.
func (s *fundingService) CreateIntent(ctx context.Context, amount float64) (*ports.PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	intent, err := s.provider.CreateIntent(ctx, amount)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	s.log.Info().Float64("amount", amount).Msg("payment intent created")
	return intent, nil
}

func (s *fundingService) Record(ctx context.Context, input ports.RecordFundingInput) (*domain.Funding, error) {
	f := &domain.Funding{
		Email:         domain.NormalizeEmail(input.Email),
		Name:          input.Name,
		Amount:        input.Amount,
		TransactionID: input.TransactionID,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("record funding: %w", err)
	}
	return created, nil
}

func (s *fundingService) List(ctx context.Context, filter ports.ListFundingsFilter) (*ports.ListFundingsResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fundings: %w", err)
	}
	return &ports.ListFundingsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *fundingService) Total(ctx context.Context) (float64, error) {
	total, err := s.repo.Total(ctx)
	if err != nil {
		return 0, fmt.Errorf("funding total: %w", err)
	}
	return total, nil
}
