package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

type donationService struct {
	repo ports.DonationRepository
	log  zerolog.Logger
}

// NewDonationService returns a DonationService.
func NewDonationService(repo ports.DonationRepository, log zerolog.Logger) ports.DonationService {
	return &donationService{repo: repo, log: log}
}

// Create stores a new donation request with the server-assigned pending
// status and creation timestamp.
func (s *donationService) Create(ctx context.Context, requester *domain.User, input ports.CreateDonationInput) (*domain.DonationRequest, error) {
	now := time.Now().UTC()
	d := &domain.DonationRequest{
		RequesterEmail: requester.Email,
		RequesterName:  requester.Name,
		RecipientName:  input.RecipientName,
		BloodGroup:     input.BloodGroup,
		District:       input.District,
		Upazila:        input.Upazila,
		Hospital:       input.Hospital,
		Address:        input.Address,
		DonationDate:   input.DonationDate,
		DonationTime:   input.DonationTime,
		Message:        input.Message,
		Status:         domain.DonationPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create donation request: %w", err)
	}
	s.log.Info().Str("id", created.ID).Str("requester", requester.Email).Msg("donation request created")
	return created, nil
}

func (s *donationService) Get(ctx context.Context, id string) (*domain.DonationRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *donationService) List(ctx context.Context, filter ports.ListDonationsFilter) (*ports.ListDonationsResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list donation requests: %w", err)
	}
	return &ports.ListDonationsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Respond attaches the donor and moves the request to inprogress. The write
// is conditional on the request still being pending, so a second respond is
// a zero-modified no-op rather than an error.
func (s *donationService) Respond(ctx context.Context, donor *domain.User, id string) (*ports.RespondResult, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	modified, err := s.repo.Respond(ctx, id, domain.DonorInfo{Name: donor.Name, Email: donor.Email})
	if err != nil {
		return nil, fmt.Errorf("respond to donation request: %w", err)
	}
	if modified > 0 {
		s.log.Info().Str("id", id).Str("donor", donor.Email).Msg("donation request responded")
	}
	return &ports.RespondResult{Modified: modified}, nil
}

// UpdateStatus applies an explicit lifecycle transition; only the requester
// or an admin may move a request, and the transition map is enforced.
func (s *donationService) UpdateStatus(ctx context.Context, caller *domain.User, id string, status domain.DonationStatus) error {
	if !domain.ValidDonationStatus(status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canMutateDonation(caller, d) {
		return domain.ErrForbidden
	}
	if !d.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, d.Status, status)
	}
	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	s.log.Info().Str("id", id).Str("status", string(status)).Msg("donation status updated")
	return nil
}

func (s *donationService) Delete(ctx context.Context, caller *domain.User, id string) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canMutateDonation(caller, d) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func canMutateDonation(caller *domain.User, d *domain.DonationRequest) bool {
	return caller.Role == domain.RoleAdmin || d.RequesterEmail == caller.Email
}
