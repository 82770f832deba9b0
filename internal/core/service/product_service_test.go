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

type stubProductRepo struct {
	byID   map[string]*domain.Product
	nextID int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	clone := *p
	clone.ID = "p" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context, _ ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) UpdateFields(_ context.Context, id string, input ports.UpdateProductInput) (int64, error) {
	p, ok := r.byID[id]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	return 1, nil
}

func (r *stubProductRepo) SetQuantity(_ context.Context, id string, quantity int64) (int64, error) {
	p, ok := r.byID[id]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	p.Quantity = quantity
	p.InStock = quantity > 0
	return 1, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func merchant() *domain.User {
	return &domain.User{Email: "shop@example.com", Role: domain.RoleMerchant, Status: domain.StatusActive, ShopName: "Corner Shop"}
}

func TestProductService_Create_SetsOwnerAndStock(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), merchant(), ports.CreateProductInput{
		Name: "Widget", Price: 9.99, Quantity: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.OwnerEmail != "shop@example.com" || created.ShopName != "Corner Shop" {
		t.Fatalf("ownership not stamped: %+v", created)
	}
	if !created.InStock {
		t.Fatalf("quantity 3 should be in stock")
	}

	empty, err := svc.Create(context.Background(), merchant(), ports.CreateProductInput{
		Name: "Empty", Price: 1, Quantity: 0,
	})
	if err != nil {
		t.Fatalf("create empty: %v", err)
	}
	if empty.InStock {
		t.Fatalf("quantity 0 should not be in stock")
	}
}

func TestProductService_Edit_OwnerOrAdminOnly(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), merchant(), ports.CreateProductInput{Name: "Widget", Price: 5, Quantity: 1})

	name := "Renamed"
	other := &domain.User{Email: "rival@example.com", Role: domain.RoleMerchant}
	if err := svc.Edit(context.Background(), other, created.ID, ports.UpdateProductInput{Name: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := svc.Edit(context.Background(), merchant(), created.ID, ports.UpdateProductInput{Name: &name}); err != nil {
		t.Fatalf("owner edit: %v", err)
	}

	admin := &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin}
	if err := svc.Edit(context.Background(), admin, created.ID, ports.UpdateProductInput{Name: &name}); err != nil {
		t.Fatalf("admin edit: %v", err)
	}
}

func TestProductService_StockOut(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), merchant(), ports.CreateProductInput{Name: "Widget", Price: 5, Quantity: 10})

	if err := svc.StockOut(context.Background(), merchant(), created.ID); err != nil {
		t.Fatalf("stock out: %v", err)
	}
	stored := repo.byID[created.ID]
	if stored.Quantity != 0 || stored.InStock {
		t.Fatalf("not stocked out: %+v", stored)
	}
}

func TestProductService_UpdateStock_RejectsNegative(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), merchant(), ports.CreateProductInput{Name: "Widget", Price: 5, Quantity: 1})

	if err := svc.UpdateStock(context.Background(), merchant(), created.ID, -1); err == nil {
		t.Fatalf("negative quantity accepted")
	}
}

func TestProductService_Delete_UnknownID(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())
	if err := svc.Delete(context.Background(), merchant(), "ghost"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
