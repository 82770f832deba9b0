package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

type contactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

// NewContactService returns a ContactService.
func NewContactService(repo ports.ContactRepository, log zerolog.Logger) ports.ContactService {
	return &contactService{repo: repo, log: log}
}

func (s *contactService) Submit(ctx context.Context, input ports.SubmitContactInput) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{
		Name:      input.Name,
		Email:     domain.NormalizeEmail(input.Email),
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("submit contact message: %w", err)
	}
	s.log.Debug().Str("email", created.Email).Msg("contact message received")
	return created, nil
}

func (s *contactService) List(ctx context.Context, page, limit int) ([]*domain.ContactMessage, int64, error) {
	page, limit = clampPage(page, limit)
	return s.repo.List(ctx, page, limit)
}
