package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

type recordedAudit struct {
	entries []domain.AuditEntry
}

func (r *recordedAudit) Record(entry domain.AuditEntry) {
	r.entries = append(r.entries, entry)
}

func seedUser(repo *stubUserRepo, id, email string, mutate func(*domain.User)) *domain.User {
	u := &domain.User{
		ID:     id,
		Email:  email,
		Role:   domain.RoleCustomer,
		Status: domain.StatusActive,
	}
	if mutate != nil {
		mutate(u)
	}
	repo.byEmail[email] = u
	return u
}

func adminActor() *domain.User {
	return &domain.User{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.StatusActive}
}

func TestUserService_RequestMerchant_DuplicatePending(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "u1", "eve@example.com", nil)
	svc := NewUserService(repo, nil, zerolog.Nop())

	updated, err := svc.RequestMerchant(context.Background(), user)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if !updated.HasPendingRequest() {
		t.Fatalf("request not installed")
	}

	if _, err := svc.RequestMerchant(context.Background(), updated); !errors.Is(err, domain.ErrRoleRequestPending) {
		t.Fatalf("expected ErrRoleRequestPending, got %v", err)
	}
}

func TestUserService_RequestMerchant_LostRaceSameOutcome(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "u1", "eve@example.com", nil)
	svc := NewUserService(repo, nil, zerolog.Nop())

	// Another request lands between the caller's read and its write. The
	// stale snapshot still sees no pending request, so only the conditional
	// write catches the race.
	stale := *user
	repo.byEmail[user.Email].RoleRequest = &domain.RoleRequest{
		Type:   domain.RoleMerchant,
		Status: domain.RequestPending,
	}

	if _, err := svc.RequestMerchant(context.Background(), &stale); !errors.Is(err, domain.ErrRoleRequestPending) {
		t.Fatalf("expected ErrRoleRequestPending on lost race, got %v", err)
	}
}

func TestUserService_RequestMerchant_DeletedAccount(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "u1", "eve@example.com", nil)
	svc := NewUserService(repo, nil, zerolog.Nop())

	// The account is removed between the caller's resolve and the write.
	stale := *user
	delete(repo.byEmail, user.Email)

	if _, err := svc.RequestMerchant(context.Background(), &stale); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for a deleted account, got %v", err)
	}
}

func TestUserService_RequestMerchant_AllowedAfterResolution(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "u1", "eve@example.com", func(u *domain.User) {
		u.RoleRequest = &domain.RoleRequest{Type: domain.RoleMerchant, Status: domain.RequestRejected}
	})
	svc := NewUserService(repo, nil, zerolog.Nop())

	updated, err := svc.RequestMerchant(context.Background(), user)
	if err != nil {
		t.Fatalf("re-request after rejection: %v", err)
	}
	if updated.RoleRequest.Status != domain.RequestPending {
		t.Fatalf("expected a fresh pending request, got %s", updated.RoleRequest.Status)
	}
}

func TestUserService_ApproveMerchant(t *testing.T) {
	repo := newStubUserRepo()
	audit := &recordedAudit{}
	seedUser(repo, "u2", "frank@example.com", func(u *domain.User) {
		u.Status = domain.StatusPending
		u.RoleRequest = &domain.RoleRequest{Type: domain.RoleMerchant, Status: domain.RequestPending}
	})
	svc := NewUserService(repo, audit, zerolog.Nop())

	user, err := svc.ApproveMerchant(context.Background(), adminActor(), "u2")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if user.Role != domain.RoleMerchant {
		t.Fatalf("role = %s, want merchant", user.Role)
	}
	if user.RoleRequest.Status != domain.RequestApproved {
		t.Fatalf("request status = %s, want approved", user.RoleRequest.Status)
	}
	if user.Status != domain.StatusActive {
		t.Fatalf("pending account should be activated, got %s", user.Status)
	}

	if len(audit.entries) != 1 || audit.entries[0].Action != domain.AuditApproveMerchant {
		t.Fatalf("audit entry missing: %+v", audit.entries)
	}
}

func TestUserService_RejectMerchant(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u3", "gina@example.com", func(u *domain.User) {
		u.Status = domain.StatusPending
		u.RoleRequest = &domain.RoleRequest{Type: domain.RoleMerchant, Status: domain.RequestPending}
	})
	svc := NewUserService(repo, nil, zerolog.Nop())

	user, err := svc.RejectMerchant(context.Background(), adminActor(), "u3")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("role = %s, want customer", user.Role)
	}
	if user.RoleRequest.Status != domain.RequestRejected {
		t.Fatalf("request status = %s, want rejected", user.RoleRequest.Status)
	}
	if user.Status != domain.StatusPending {
		t.Fatalf("rejection must not touch account status, got %s", user.Status)
	}
}

func TestUserService_ApproveMerchant_NoRequest(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u4", "hank@example.com", nil)
	svc := NewUserService(repo, nil, zerolog.Nop())

	if _, err := svc.ApproveMerchant(context.Background(), adminActor(), "u4"); !errors.Is(err, domain.ErrNoRoleRequest) {
		t.Fatalf("expected ErrNoRoleRequest, got %v", err)
	}

	// A resolved request is no longer actionable.
	repo.byEmail["hank@example.com"].RoleRequest = &domain.RoleRequest{
		Type:   domain.RoleMerchant,
		Status: domain.RequestApproved,
	}
	if _, err := svc.ApproveMerchant(context.Background(), adminActor(), "u4"); !errors.Is(err, domain.ErrNoRoleRequest) {
		t.Fatalf("expected ErrNoRoleRequest for resolved request, got %v", err)
	}
}

func TestUserService_ApproveMerchant_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	if _, err := svc.ApproveMerchant(context.Background(), adminActor(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_SetStatus_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u5", "iris@example.com", nil)
	svc := NewUserService(repo, nil, zerolog.Nop())

	for i := 0; i < 2; i++ {
		user, err := svc.SetStatus(context.Background(), adminActor(), "u5", domain.StatusBlocked)
		if err != nil {
			t.Fatalf("set status (attempt %d): %v", i+1, err)
		}
		if user.Status != domain.StatusBlocked {
			t.Fatalf("status = %s, want blocked", user.Status)
		}
	}
}

func TestUserService_SetRole_RejectsUnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u6", "judy@example.com", nil)
	svc := NewUserService(repo, nil, zerolog.Nop())

	if _, err := svc.SetRole(context.Background(), adminActor(), "u6", "root"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_SearchDonors_NormalizesGroup(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u7", "karl@example.com", func(u *domain.User) {
		u.BloodGroup = "A+"
		u.District = "Dhaka"
		u.Upazila = "Savar"
	})
	seedUser(repo, "u8", "lena@example.com", func(u *domain.User) {
		u.BloodGroup = "A+"
		u.District = "Dhaka"
		u.Status = domain.StatusBlocked
	})
	svc := NewUserService(repo, nil, zerolog.Nop())

	donors, err := svc.SearchDonors(context.Background(), "Ap", "Dhaka", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(donors) != 1 || donors[0].Email != "karl@example.com" {
		t.Fatalf("expected only the active A+ donor, got %+v", donors)
	}
}

func TestUserService_List_ClampsPagination(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u9", "mia@example.com", nil)
	svc := NewUserService(repo, nil, zerolog.Nop())

	result, err := svc.List(context.Background(), ports.ListUsersFilter{Page: -3, Limit: 100000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("page = %d, want 1", result.Page)
	}
	if result.Limit != maxPageLimit {
		t.Fatalf("limit = %d, want %d", result.Limit, maxPageLimit)
	}
}
