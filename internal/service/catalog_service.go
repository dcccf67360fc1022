package service

import (
	"context"
	"math"

	"go-storefront-api/internal/cache"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/rbac"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/ws"
	"go-storefront-api/pkg/numeric"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
)

// VariantInput and ProductInput are the write shapes of the catalog.
// Price and stock fields go through the numeric codec, so plain
// numbers, numeric strings and legacy wrapper objects all land in the
// same place.
type VariantInput struct {
	Color        string           `json:"color" validate:"required"`
	Price        *numeric.Numeric `json:"price,omitempty"`
	SpecialPrice *numeric.Numeric `json:"special_price,omitempty"`
	Stock        *numeric.Numeric `json:"stock,omitempty"`
	SKU          string           `json:"sku,omitempty"`
}

type ProductInput struct {
	Name         string           `json:"name" validate:"required"`
	Category     string           `json:"category"`
	BasePrice    numeric.Numeric  `json:"base_price"`
	SpecialPrice *numeric.Numeric `json:"special_price,omitempty"`
	Stock        numeric.Numeric  `json:"stock"`
	Variants     []VariantInput   `json:"variants" validate:"dive"`
}

func (in *ProductInput) apply(p *model.Product) {
	p.Name = in.Name
	p.Category = in.Category
	p.BasePrice = in.BasePrice.Float64()
	p.SpecialPrice = floatPtr(in.SpecialPrice)
	p.Stock = int(math.Trunc(in.Stock.Float64()))
	p.Variants = make([]model.Variant, 0, len(in.Variants))
	for _, v := range in.Variants {
		variant := model.Variant{
			Color:        v.Color,
			Price:        floatPtr(v.Price),
			SpecialPrice: floatPtr(v.SpecialPrice),
			SKU:          v.SKU,
		}
		if v.Stock != nil {
			stock := int(math.Trunc(v.Stock.Float64()))
			variant.Stock = &stock
		}
		p.Variants = append(p.Variants, variant)
	}
}

func floatPtr(n *numeric.Numeric) *float64 {
	if n == nil {
		return nil
	}
	f := n.Float64()
	return &f
}

type CatalogService interface {
	CreateProduct(actor model.Actor, req *ProductInput) (*model.Product, error)
	UpdateProduct(actor model.Actor, id uuid.UUID, req *ProductInput) (*model.Product, error)
	DeleteProduct(actor model.Actor, id uuid.UUID) error
	SetApproval(actor model.Actor, id uuid.UUID, status model.ProductStatus) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListPublished(ctx context.Context) ([]model.Product, error)
	ListForSeller(actor model.Actor) ([]model.Product, error)
	ListPendingApproval(actor model.Actor) ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	cache       *cache.CatalogCache
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, c *cache.CatalogCache, hub *ws.Hub) CatalogService {
	return &catalogService{productRepo: pRepo, cache: c, wsHub: hub}
}

// CreateProduct registers a new catalog entry owned by the acting
// seller. Every new product starts pending and is invisible on the
// storefront until an admin publishes it.
func (s *catalogService) CreateProduct(actor model.Actor, req *ProductInput) (*model.Product, error) {
	if err := rbac.Check(actor, rbac.ActionCreateProduct, nil); err != nil {
		return nil, err
	}
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		SellerEmail: actor.Email,
		Status:      model.ProductPending,
	}
	req.apply(product)
	product.CreatedBy = actor.Email
	product.UpdatedBy = actor.Email

	if err := product.ValidatePricing(); err != nil {
		return nil, err
	}
	if product.Stock < 0 {
		return nil, model.ErrInvalidPrice
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(actor model.Actor, id uuid.UUID, req *ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := rbac.Check(actor, rbac.ActionEditProduct, product); err != nil {
		return nil, err
	}
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	req.apply(product)
	product.UpdatedBy = actor.Email

	if err := product.ValidatePricing(); err != nil {
		return nil, err
	}
	if product.Stock < 0 {
		return nil, model.ErrInvalidPrice
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.cache.Invalidate(context.Background())
	go s.wsHub.BroadcastJSON("stock_update", product)

	return product, nil
}

func (s *catalogService) DeleteProduct(actor model.Actor, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := rbac.Check(actor, rbac.ActionDeleteProduct, product); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id, actor.Email); err != nil {
		return err
	}
	s.cache.Invalidate(context.Background())
	return nil
}

// SetApproval is the admin decision on a seller submission: published
// makes the product visible to the storefront, rejected keeps it off.
func (s *catalogService) SetApproval(actor model.Actor, id uuid.UUID, status model.ProductStatus) (*model.Product, error) {
	if status != model.ProductPublished && status != model.ProductRejected {
		return nil, ErrInvalidApprovalStatus
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := rbac.Check(actor, rbac.ActionApproveProduct, product); err != nil {
		return nil, err
	}

	product.Status = status
	product.UpdatedBy = actor.Email
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.cache.Invalidate(context.Background())
	return product, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

// ListPublished serves the storefront listing through the redis
// cache-aside layer.
func (s *catalogService) ListPublished(ctx context.Context) ([]model.Product, error) {
	if products, ok := s.cache.GetPublished(ctx); ok {
		return products, nil
	}
	products, err := s.productRepo.FindPublished()
	if err != nil {
		return nil, err
	}
	s.cache.SetPublished(ctx, products)
	return products, nil
}

func (s *catalogService) ListForSeller(actor model.Actor) ([]model.Product, error) {
	switch actor.Role {
	case model.RoleAdmin:
		return s.productRepo.FindAll()
	case model.RoleSeller:
		return s.productRepo.FindBySeller(actor.Email)
	default:
		return nil, rbac.ErrForbidden
	}
}

func (s *catalogService) ListPendingApproval(actor model.Actor) ([]model.Product, error) {
	if err := rbac.Check(actor, rbac.ActionApproveProduct, nil); err != nil {
		return nil, err
	}
	return s.productRepo.FindPendingApproval()
}
