package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

type blogService struct {
	repo ports.BlogRepository
	log  zerolog.Logger
}

// NewBlogService returns a BlogService.
func NewBlogService(repo ports.BlogRepository, log zerolog.Logger) ports.BlogService {
	return &blogService{repo: repo, log: log}
}

func (s *blogService) Create(ctx context.Context, author *domain.User, input ports.CreateBlogInput) (*domain.Blog, error) {
	now := time.Now().UTC()
	b := &domain.Blog{
		Title:       input.Title,
		Thumbnail:   input.Thumbnail,
		Content:     input.Content,
		AuthorEmail: author.Email,
		AuthorName:  author.Name,
		Status:      domain.BlogDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// Get returns a post. Drafts are only visible to admins and their author.
func (s *blogService) Get(ctx context.Context, caller *domain.User, id string) (*domain.Blog, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BlogPublished && !canReadDraft(caller, b) {
		return nil, domain.ErrBlogNotFound
	}
	return b, nil
}

// List returns published posts for anonymous and regular callers; an admin
// may select any status through the filter.
func (s *blogService) List(ctx context.Context, caller *domain.User, filter ports.ListBlogsFilter) (*ports.ListBlogsResult, error) {
	if caller == nil || caller.Role != domain.RoleAdmin {
		filter.Status = domain.BlogPublished
	} else if filter.Status == "" {
		filter.Status = domain.BlogPublished
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return &ports.ListBlogsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *blogService) Publish(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.BlogPublished)
}

func (s *blogService) Unpublish(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.BlogDraft)
}

func (s *blogService) setStatus(ctx context.Context, id string, status domain.BlogStatus) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set blog status: %w", err)
	}
	s.log.Info().Str("id", id).Str("status", string(status)).Msg("blog status updated")
	return nil
}

func (s *blogService) Delete(ctx context.Context, caller *domain.User, id string) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin && b.AuthorEmail != caller.Email {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func canReadDraft(caller *domain.User, b *domain.Blog) bool {
	if caller == nil {
		return false
	}
	return caller.Role == domain.RoleAdmin || b.AuthorEmail == caller.Email
}
