package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

type stubDonationRepo struct {
	byID   map[string]*domain.DonationRequest
	nextID int
}

func newStubDonationRepo() *stubDonationRepo {
	return &stubDonationRepo{byID: make(map[string]*domain.DonationRequest)}
}

func (r *stubDonationRepo) Create(_ context.Context, d *domain.DonationRequest) (*domain.DonationRequest, error) {
	r.nextID++
	clone := *d
	clone.ID = "d" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDonationRepo) FindByID(_ context.Context, id string) (*domain.DonationRequest, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDonationRepo) List(_ context.Context, filter ports.ListDonationsFilter) ([]*domain.DonationRequest, int64, error) {
	var out []*domain.DonationRequest
	for _, d := range r.byID {
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		if filter.RequesterEmail != "" && d.RequesterEmail != filter.RequesterEmail {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubDonationRepo) Respond(_ context.Context, id string, donor domain.DonorInfo) (int64, error) {
	d, ok := r.byID[id]
	if !ok || d.Status != domain.DonationPending {
		return 0, nil
	}
	d.Status = domain.DonationInProgress
	d.DonorInfo = &donor
	return 1, nil
}

func (r *stubDonationRepo) UpdateStatus(_ context.Context, id string, status domain.DonationStatus) (int64, error) {
	d, ok := r.byID[id]
	if !ok {
		return 0, domain.ErrDonationNotFound
	}
	d.Status = status
	return 1, nil
}

func (r *stubDonationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrDonationNotFound
	}
	delete(r.byID, id)
	return nil
}

func requester() *domain.User {
	return &domain.User{Email: "req@example.com", Name: "Requester", Role: domain.RoleCustomer, Status: domain.StatusActive}
}

func donor() *domain.User {
	return &domain.User{Email: "donor@example.com", Name: "Donor", Role: domain.RoleCustomer, Status: domain.StatusActive}
}

func TestDonationService_Create_ForcesPending(t *testing.T) {
	repo := newStubDonationRepo()
	svc := NewDonationService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), requester(), ports.CreateDonationInput{
		RecipientName: "Patient",
		BloodGroup:    "A+",
		District:      "Dhaka",
		Hospital:      "DMC",
		DonationDate:  "2026-09-01",
		DonationTime:  "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.DonationPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}
	if created.RequesterEmail != "req@example.com" {
		t.Fatalf("requester not taken from the caller: %s", created.RequesterEmail)
	}
}

func TestDonationService_Respond_FirstWinsSecondNoOp(t *testing.T) {
	repo := newStubDonationRepo()
	svc := NewDonationService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), requester(), ports.CreateDonationInput{
		RecipientName: "Patient", BloodGroup: "O-", District: "Dhaka",
		Hospital: "DMC", DonationDate: "2026-09-01", DonationTime: "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.Respond(context.Background(), donor(), created.ID)
	if err != nil {
		t.Fatalf("first respond: %v", err)
	}
	if first.Modified != 1 {
		t.Fatalf("first respond modified = %d, want 1", first.Modified)
	}

	second, err := svc.Respond(context.Background(), donor(), created.ID)
	if err != nil {
		t.Fatalf("second respond must not error: %v", err)
	}
	if second.Modified != 0 {
		t.Fatalf("second respond modified = %d, want 0", second.Modified)
	}

	stored := repo.byID[created.ID]
	if stored.Status != domain.DonationInProgress || stored.DonorInfo == nil {
		t.Fatalf("donor not attached: %+v", stored)
	}
}

func TestDonationService_Respond_UnknownID(t *testing.T) {
	svc := NewDonationService(newStubDonationRepo(), zerolog.Nop())
	if _, err := svc.Respond(context.Background(), donor(), "ghost"); !errors.Is(err, domain.ErrDonationNotFound) {
		t.Fatalf("expected ErrDonationNotFound, got %v", err)
	}
}

func TestDonationService_UpdateStatus_OwnerOrAdminOnly(t *testing.T) {
	repo := newStubDonationRepo()
	svc := NewDonationService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), requester(), ports.CreateDonationInput{
		RecipientName: "Patient", BloodGroup: "B+", District: "Dhaka",
		Hospital: "DMC", DonationDate: "2026-09-01", DonationTime: "10:00",
	})

	stranger := &domain.User{Email: "other@example.com", Role: domain.RoleCustomer}
	if err := svc.UpdateStatus(context.Background(), stranger, created.ID, domain.DonationCanceled); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	admin := &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin}
	if err := svc.UpdateStatus(context.Background(), admin, created.ID, domain.DonationCanceled); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestDonationService_UpdateStatus_EnforcesTransitions(t *testing.T) {
	repo := newStubDonationRepo()
	svc := NewDonationService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), requester(), ports.CreateDonationInput{
		RecipientName: "Patient", BloodGroup: "AB-", District: "Dhaka",
		Hospital: "DMC", DonationDate: "2026-09-01", DonationTime: "10:00",
	})

	// pending → done skips inprogress.
	err := svc.UpdateStatus(context.Background(), requester(), created.ID, domain.DonationDone)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), requester(), created.ID, domain.DonationInProgress); err != nil {
		t.Fatalf("pending → inprogress: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), requester(), created.ID, domain.DonationDone); err != nil {
		t.Fatalf("inprogress → done: %v", err)
	}

	// Terminal state.
	err = svc.UpdateStatus(context.Background(), requester(), created.ID, domain.DonationCanceled)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("done is terminal, got %v", err)
	}
}
