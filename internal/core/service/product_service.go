package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

type productService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

// NewProductService returns a ProductService.
func NewProductService(repo ports.ProductRepository, log zerolog.Logger) ports.ProductService {
	return &productService{repo: repo, log: log}
}

func (s *productService) Create(ctx context.Context, owner *domain.User, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		InStock:     input.Quantity > 0,
		OwnerEmail:  owner.Email,
		ShopName:    owner.ShopName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Info().Str("id", created.ID).Str("owner", owner.Email).Msg("product created")
	return created, nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productService) List(ctx context.Context, filter ports.ListProductsFilter) (*ports.ListProductsResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *productService) Edit(ctx context.Context, caller *domain.User, id string, input ports.UpdateProductInput) error {
	if err := s.requireOwnership(ctx, caller, id); err != nil {
		return err
	}
	if _, err := s.repo.UpdateFields(ctx, id, input); err != nil {
		return fmt.Errorf("edit product: %w", err)
	}
	return nil
}

func (s *productService) UpdateStock(ctx context.Context, caller *domain.User, id string, quantity int64) error {
	if quantity < 0 {
		return fmt.Errorf("%w: negative quantity", domain.ErrInvalidInput)
	}
	if err := s.requireOwnership(ctx, caller, id); err != nil {
		return err
	}
	if _, err := s.repo.SetQuantity(ctx, id, quantity); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

func (s *productService) StockOut(ctx context.Context, caller *domain.User, id string) error {
	if err := s.requireOwnership(ctx, caller, id); err != nil {
		return err
	}
	if _, err := s.repo.SetQuantity(ctx, id, 0); err != nil {
		return fmt.Errorf("stock out: %w", err)
	}
	return nil
}

func (s *productService) Delete(ctx context.Context, caller *domain.User, id string) error {
	if err := s.requireOwnership(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// requireOwnership loads the product and checks the owner-or-admin rule
// shared by every mutating endpoint.
func (s *productService) requireOwnership(ctx context.Context, caller *domain.User, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin && !p.OwnedBy(caller.Email) {
		return domain.ErrForbidden
	}
	return nil
}
