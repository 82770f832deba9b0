package ports

import (
	"context"

	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// CreateProductInput carries the fields of a new listing. Owner identity
// comes from the authenticated merchant.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Quantity    int64
}

// UpdateProductInput is the partial field set accepted by the edit endpoint.
// Nil pointers leave the stored value untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
}

// ListProductsFilter selects listings for the public catalogue or a
// merchant's own inventory.
type ListProductsFilter struct {
	Category   string
	OwnerEmail string
	InStock    *bool
	Page       int
	Limit      int
}

// ListProductsResult is a page of listings.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductRepository defines persistence for marketplace listings.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	UpdateFields(ctx context.Context, id string, input UpdateProductInput) (int64, error)
	SetQuantity(ctx context.Context, id string, quantity int64) (int64, error)
	Delete(ctx context.Context, id string) error
}

// ProductService defines use-case operations for listings. All mutations
// require the caller to be the owner or an admin.
type ProductService interface {
	Create(ctx context.Context, owner *domain.User, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) (*ListProductsResult, error)
	Edit(ctx context.Context, caller *domain.User, id string, input UpdateProductInput) error
	UpdateStock(ctx context.Context, caller *domain.User, id string, quantity int64) error
	StockOut(ctx context.Context, caller *domain.User, id string) error
	Delete(ctx context.Context, caller *domain.User, id string) error
}
