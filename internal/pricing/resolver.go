// Package pricing resolves the effective unit price of a product or
// product variant. It is pure: callers load the product and pass it in.
package pricing

import (
	"errors"
	"math"

	"go-storefront-api/internal/model"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Quote is the outcome of a price resolution for one cart or order line.
type Quote struct {
	UnitPrice       float64 `json:"unit_price"`
	LineTotal       float64 `json:"line_total"`
	DiscountPercent int     `json:"discount_percent"`
}

// Resolve computes the effective unit price and line total for qty
// units of the product, or of the selected variant when v is non-nil.
//
// A variant that carries its own price stands alone: only its own
// special price can discount it, the product-level special never
// applies. A variant without its own price inherits the product's base
// and special price. A special price is effective only when it is
// positive and strictly below the base it discounts.
func Resolve(p *model.Product, v *model.Variant, qty int) (Quote, error) {
	if qty < 1 {
		return Quote{}, ErrInvalidQuantity
	}

	base := p.BasePrice
	special := p.SpecialPrice
	if v != nil && v.Price != nil {
		base = *v.Price
		special = v.SpecialPrice
	}

	effective := base
	discount := 0
	if special != nil && *special > 0 && *special < base {
		effective = *special
		discount = int(math.Round((base - effective) / base * 100))
	}

	return Quote{
		UnitPrice:       effective,
		LineTotal:       effective * float64(qty),
		DiscountPercent: discount,
	}, nil
}
