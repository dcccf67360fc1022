// Package stock validates requested quantities against available stock
// and produces reservation deltas. It performs no storage I/O: the
// checkout service applies a Reservation inside a row-locked database
// transaction, which is the one critical section of the subsystem.
package stock

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-storefront-api/internal/model"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Reservation is a validated, not-yet-applied stock decrement. An empty
// VariantColor targets product-level stock.
type Reservation struct {
	ProductID    uuid.UUID
	VariantColor string
	Quantity     int
}

// Available returns the stock pool the request draws from: the
// variant's own stock when it carries one, else the product's.
func Available(p *model.Product, v *model.Variant) int {
	if v != nil && v.Stock != nil {
		return *v.Stock
	}
	return p.Stock
}

// Reserve validates qty against the available stock and returns the
// delta to apply. It never succeeds when qty exceeds availability.
func Reserve(p *model.Product, v *model.Variant, qty int) (Reservation, error) {
	if qty < 1 {
		return Reservation{}, ErrInvalidQuantity
	}
	if qty > Available(p, v) {
		return Reservation{}, ErrInsufficientStock
	}
	r := Reservation{ProductID: p.ID, Quantity: qty}
	if v != nil && v.Stock != nil {
		r.VariantColor = v.Color
	}
	return r, nil
}

// Apply decrements the matching stock field on the loaded product. The
// caller must hold a row lock on the product and persist it in the same
// transaction. Availability is re-checked under the lock so two
// concurrent checkouts can never both drain the same units.
func (r Reservation) Apply(p *model.Product) error {
	if p.ID != r.ProductID {
		return fmt.Errorf("reservation targets product %s, got %s", r.ProductID, p.ID)
	}
	if r.VariantColor != "" {
		v := p.VariantByColor(r.VariantColor)
		if v == nil || v.Stock == nil {
			return ErrInsufficientStock
		}
		if *v.Stock < r.Quantity {
			return ErrInsufficientStock
		}
		*v.Stock -= r.Quantity
		return nil
	}
	if p.Stock < r.Quantity {
		return ErrInsufficientStock
	}
	p.Stock -= r.Quantity
	return nil
}

// Release is the compensating action for Apply: it returns the reserved
// units to the matching pool. Used when an order lands on cancelled, or
// when placement aborts after a reserve succeeded.
func (r Reservation) Release(p *model.Product) {
	if r.VariantColor != "" {
		if v := p.VariantByColor(r.VariantColor); v != nil && v.Stock != nil {
			*v.Stock += r.Quantity
			return
		}
	}
	p.Stock += r.Quantity
}
