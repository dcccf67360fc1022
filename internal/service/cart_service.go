package service

import (
	"go-storefront-api/internal/cart"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/pricing"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/stock"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
)

// CartView is a cart plus its derived totals. Totals are recomputed
// from the lines on every read, never stored.
type CartView struct {
	Cart       *model.Cart `json:"cart"`
	TotalItems int         `json:"total_items"`
	Subtotal   float64     `json:"subtotal"`
}

type AddCartItemRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"uuid_required"`
	VariantKey string    `json:"variant_key"`
	Quantity   int       `json:"quantity" validate:"required,gte=1"`
}

type CartService interface {
	GetCart(actor model.Actor) (*CartView, error)
	AddItem(actor model.Actor, req *AddCartItemRequest) (*CartView, error)
	ChangeQuantity(actor model.Actor, productID uuid.UUID, variantKey string, delta int) (*CartView, error)
	RemoveItem(actor model.Actor, productID uuid.UUID, variantKey string) (*CartView, error)
	Clear(actor model.Actor) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cRepo repository.CartRepository, pRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cRepo, productRepo: pRepo}
}

func view(c *model.Cart) *CartView {
	return &CartView{
		Cart:       c,
		TotalItems: cart.TotalItems(c.Items),
		Subtotal:   cart.Subtotal(c.Items),
	}
}

func (s *cartService) GetCart(actor model.Actor) (*CartView, error) {
	c, err := s.cartRepo.FindByOwner(actor.Email)
	if err != nil {
		return nil, err
	}
	return view(c), nil
}

// AddItem prices the product (or variant) now and stores the quote as
// the line's unit-price snapshot. The combined quantity of the line is
// validated against the available stock before it is persisted.
func (s *cartService) AddItem(actor model.Actor, req *AddCartItemRequest) (*CartView, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		return nil, ErrProductUnavailable
	}
	if product.Status != model.ProductPublished {
		return nil, ErrProductUnavailable
	}

	variant := product.VariantByColor(req.VariantKey)
	if req.VariantKey != "" && variant == nil {
		return nil, ErrVariantNotFound
	}

	quote, err := pricing.Resolve(product, variant, req.Quantity)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByOwner(actor.Email)
	if err != nil {
		return nil, err
	}

	held := 0
	for _, l := range c.Items {
		if l.ProductID == req.ProductID && l.VariantKey == req.VariantKey {
			held = l.Quantity
		}
	}
	if _, err := stock.Reserve(product, variant, held+req.Quantity); err != nil {
		return nil, err
	}

	c.Items = cart.AddOrUpdate(c.Items, model.CartLine{
		ProductID:  req.ProductID,
		VariantKey: req.VariantKey,
		Name:       product.Name,
		UnitPrice:  quote.UnitPrice,
		Quantity:   req.Quantity,
	})
	if err := s.cartRepo.Save(c); err != nil {
		return nil, err
	}
	return view(c), nil
}

// ChangeQuantity adjusts a line by delta with floor-at-removal
// semantics. Increases are re-validated against available stock;
// decreases always go through.
func (s *cartService) ChangeQuantity(actor model.Actor, productID uuid.UUID, variantKey string, delta int) (*CartView, error) {
	c, err := s.cartRepo.FindByOwner(actor.Email)
	if err != nil {
		return nil, err
	}

	if delta > 0 {
		product, err := s.productRepo.FindByID(productID)
		if err != nil {
			return nil, ErrProductUnavailable
		}
		variant := product.VariantByColor(variantKey)
		if variantKey != "" && variant == nil {
			return nil, ErrVariantNotFound
		}
		held := 0
		for _, l := range c.Items {
			if l.ProductID == productID && l.VariantKey == variantKey {
				held = l.Quantity
			}
		}
		if _, err := stock.Reserve(product, variant, held+delta); err != nil {
			return nil, err
		}
	}

	c.Items = cart.ChangeQuantity(c.Items, productID, variantKey, delta)
	if err := s.cartRepo.Save(c); err != nil {
		return nil, err
	}
	return view(c), nil
}

func (s *cartService) RemoveItem(actor model.Actor, productID uuid.UUID, variantKey string) (*CartView, error) {
	c, err := s.cartRepo.FindByOwner(actor.Email)
	if err != nil {
		return nil, err
	}
	c.Items = cart.Remove(c.Items, productID, variantKey)
	if err := s.cartRepo.Save(c); err != nil {
		return nil, err
	}
	return view(c), nil
}

func (s *cartService) Clear(actor model.Actor) error {
	return s.cartRepo.DeleteByOwner(actor.Email)
}
