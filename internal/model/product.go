package model

import "errors"

// ErrInvalidPrice rejects price configurations that break the pricing
// invariants: base price must be positive and a special price must sit
// strictly below the base it discounts.
var ErrInvalidPrice = errors.New("invalid price configuration")

type ProductStatus string

const (
	ProductPending   ProductStatus = "pending"
	ProductPublished ProductStatus = "published"
	ProductRejected  ProductStatus = "rejected"
)

// Variant is a purchasable sub-configuration of a product (keyed by
// color) with optional price and stock overrides. A variant without its
// own price inherits the product's base and special price; a variant
// without its own stock draws from the product's stock pool.
type Variant struct {
	Color        string   `json:"color" validate:"required"`
	Price        *float64 `json:"price,omitempty"`
	SpecialPrice *float64 `json:"special_price,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	SKU          string   `json:"sku,omitempty"`
}

// Clone deep-copies the variant so the copy's pointer fields no longer
// alias the product's live variant.
func (v Variant) Clone() Variant {
	out := v
	if v.Price != nil {
		price := *v.Price
		out.Price = &price
	}
	if v.SpecialPrice != nil {
		special := *v.SpecialPrice
		out.SpecialPrice = &special
	}
	if v.Stock != nil {
		stock := *v.Stock
		out.Stock = &stock
	}
	return out
}

type Product struct {
	BaseModel
	Name         string        `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string        `gorm:"type:varchar(100);index" json:"category"`
	BasePrice    float64       `gorm:"not null" json:"base_price" validate:"required,gt=0"`
	SpecialPrice *float64      `json:"special_price,omitempty"`
	Stock        int           `gorm:"default:0" json:"stock" validate:"gte=0"`
	Variants     []Variant     `gorm:"type:jsonb;serializer:json" json:"variants"`
	SellerEmail  string        `gorm:"type:varchar(255);index;not null" json:"seller_email"`
	Status       ProductStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}

// VariantByColor returns the variant with the given color key, or nil
// when the product has no such variant. An empty key selects no variant.
func (p *Product) VariantByColor(color string) *Variant {
	if color == "" {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].Color == color {
			return &p.Variants[i]
		}
	}
	return nil
}

// ValidatePricing enforces the price invariants across the product and
// all of its variants, and rejects duplicate variant colors.
func (p *Product) ValidatePricing() error {
	if p.BasePrice <= 0 {
		return ErrInvalidPrice
	}
	if p.SpecialPrice != nil && (*p.SpecialPrice <= 0 || *p.SpecialPrice >= p.BasePrice) {
		return ErrInvalidPrice
	}
	seen := make(map[string]bool, len(p.Variants))
	for _, v := range p.Variants {
		if seen[v.Color] {
			return ErrInvalidPrice
		}
		seen[v.Color] = true
		if v.Price != nil && *v.Price <= 0 {
			return ErrInvalidPrice
		}
		if v.SpecialPrice != nil {
			if v.Price == nil {
				return ErrInvalidPrice
			}
			if *v.SpecialPrice <= 0 || *v.SpecialPrice >= *v.Price {
				return ErrInvalidPrice
			}
		}
		if v.Stock != nil && *v.Stock < 0 {
			return ErrInvalidPrice
		}
	}
	return nil
}

// OwnerSellerEmail implements the rbac resource contract.
func (p *Product) OwnerSellerEmail() string { return p.SellerEmail }

// OwnerCustomerEmail implements the rbac resource contract. Products
// have no customer owner.
func (p *Product) OwnerCustomerEmail() string { return "" }
