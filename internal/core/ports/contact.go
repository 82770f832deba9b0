package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// SubmitContactInput carries a public contact-form submission.
type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactRepository defines persistence for the admin mailbox.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context, page, limit int) ([]*domain.ContactMessage, int64, error)
}

// ContactService defines use-case operations for the mailbox.
type ContactService interface {
	Submit(ctx context.Context, input SubmitContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context, page, limit int) ([]*domain.ContactMessage, int64, error)
}

// AuditRepository persists the administrative audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, subject string, page, limit int) ([]*domain.AuditEntry, int64, error)
}
