package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// CreateBlogInput carries the fields of a new post; author identity comes
// from the authenticated user and the post starts as a draft.
type CreateBlogInput struct {
	Title     string
	Thumbnail string
	Content   string
}

// ListBlogsFilter selects posts. Status empty means "published only" for
// non-admin callers; admins may ask for any status.
type ListBlogsFilter struct {
	Status domain.BlogStatus
	Page   int
	Limit  int
}

// ListBlogsResult is a page of posts.
type ListBlogsResult struct {
	Items      []*domain.Blog
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BlogRepository defines persistence for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context, filter ListBlogsFilter) ([]*domain.Blog, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.BlogStatus) (int64, error)
	Delete(ctx context.Context, id string) error
}

// BlogService defines use-case operations for blog posts.
type BlogService interface {
	Create(ctx context.Context, author *domain.User, input CreateBlogInput) (*domain.Blog, error)
	Get(ctx context.Context, caller *domain.User, id string) (*domain.Blog, error)
	List(ctx context.Context, caller *domain.User, filter ListBlogsFilter) (*ListBlogsResult, error)
	Publish(ctx context.Context, id string) error
	Unpublish(ctx context.Context, id string) error
	Delete(ctx context.Context, caller *domain.User, id string) error
}
