package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

const maxPageLimit = 100

// AuditRecorder receives administrative decisions for asynchronous
// persistence. Recording must never block the request path.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

type userService struct {
	users ports.UserRepository
	audit AuditRecorder
	log   zerolog.Logger
}

// NewUserService returns a UserService. audit may be nil, in which case
// administrative decisions are not journalled.
func NewUserService(users ports.UserRepository, audit AuditRecorder, log zerolog.Logger) ports.UserService {
	return &userService{users: users, audit: audit, log: log}
}

// RegisterOrUpdate upserts the self-service profile keyed on email. Grants
// (role, status) are owned by the server and survive the update untouched.
func (s *userService) RegisterOrUpdate(ctx context.Context, input ports.UpsertProfileInput) (*domain.User, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	user, err := s.users.UpsertProfile(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	s.log.Info().Str("email", user.Email).Msg("profile upserted")
	return user, nil
}

// RequestMerchant installs a pending merchant request for the caller. At
// most one request may be pending per account; a resolved request may be
// superseded by a fresh one.
func (s *userService) RequestMerchant(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.HasPendingRequest() {
		return nil, domain.ErrRoleRequestPending
	}

	req := domain.RoleRequest{
		Type:        domain.RoleMerchant,
		Status:      domain.RequestPending,
		RequestedAt: time.Now().UTC(),
	}
	modified, err := s.users.SetPendingRequest(ctx, user.Email, req)
	if err != nil {
		return nil, fmt.Errorf("request merchant: %w", err)
	}
	if modified == 0 {
		// Either a concurrent request won, or the account vanished between
		// resolve and write. Re-read to tell the two apart.
		if _, err := s.users.FindByEmail(ctx, user.Email); err != nil {
			return nil, err
		}
		return nil, domain.ErrRoleRequestPending
	}

	s.log.Info().Str("email", user.Email).Msg("merchant role requested")
	return s.users.FindByEmail(ctx, user.Email)
}

// ApproveMerchant settles a pending merchant request: the role becomes
// merchant and a pending account status is promoted to active.
func (s *userService) ApproveMerchant(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	subject, err := s.requirePendingMerchantRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	modified, err := s.users.ResolveMerchantRequest(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("approve merchant: %w", err)
	}
	if modified == 0 {
		// The request was resolved between the read and the conditional write.
		return nil, domain.ErrNoRoleRequest
	}
	if _, err := s.users.ActivateIfPending(ctx, id); err != nil {
		return nil, fmt.Errorf("approve merchant: activate: %w", err)
	}

	s.record(actor, subject.Email, domain.AuditApproveMerchant, "role customer -> merchant")
	s.log.Info().Str("email", subject.Email).Str("actor", actor.Email).Msg("merchant request approved")
	return s.users.FindByID(ctx, id)
}

// RejectMerchant settles a pending merchant request negatively: the role
// reverts to customer and the account status is left untouched, so the user
// may reapply later.
func (s *userService) RejectMerchant(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	subject, err := s.requirePendingMerchantRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	modified, err := s.users.ResolveMerchantRequest(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("reject merchant: %w", err)
	}
	if modified == 0 {
		return nil, domain.ErrNoRoleRequest
	}

	s.record(actor, subject.Email, domain.AuditRejectMerchant, "merchant request rejected")
	s.log.Info().Str("email", subject.Email).Str("actor", actor.Email).Msg("merchant request rejected")
	return s.users.FindByID(ctx, id)
}

func (s *userService) requirePendingMerchantRequest(ctx context.Context, id string) (*domain.User, error) {
	subject, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req := subject.RoleRequest
	if req == nil || req.Type != domain.RoleMerchant || req.Status != domain.RequestPending {
		return nil, domain.ErrNoRoleRequest
	}
	return subject, nil
}

// SetRole sets the role verbatim; no request envelope is required for the
// direct admin mutation.
func (s *userService) SetRole(ctx context.Context, actor *domain.User, id string, role domain.Role) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	subject, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	s.record(actor, subject.Email, domain.AuditSetRole, fmt.Sprintf("role %s -> %s", subject.Role, role))
	return s.users.FindByID(ctx, id)
}

// SetStatus sets the account status verbatim. Repeating the same status is
// idempotent: the second write matches the document and modifies nothing.
func (s *userService) SetStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.User, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	subject, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	s.record(actor, subject.Email, domain.AuditSetStatus, fmt.Sprintf("status %s -> %s", subject.Status, status))
	return s.users.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *userService) Delete(ctx context.Context, actor *domain.User, id string) error {
	subject, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.record(actor, subject.Email, domain.AuditDeleteUser, "")
	s.log.Info().Str("email", subject.Email).Str("actor", actor.Email).Msg("user deleted")
	return nil
}

func (s *userService) SearchDonors(ctx context.Context, encodedGroup, district, upazila string) ([]*domain.User, error) {
	filter := ports.DonorSearchFilter{
		District: district,
		Upazila:  upazila,
	}
	if encodedGroup != "" {
		filter.BloodGroup = domain.NormalizeBloodGroup(encodedGroup)
	}
	donors, err := s.users.SearchDonors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search donors: %w", err)
	}
	return donors, nil
}

func (s *userService) record(actor *domain.User, subject, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		ActorEmail: actor.Email,
		Subject:    subject,
		Action:     action,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	})
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
