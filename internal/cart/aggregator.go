// Package cart holds the pure cart-line operations. The cart store
// itself (a row per owner) is passed in and persisted by the caller;
// nothing here touches storage or global state.
package cart

import (
	"github.com/google/uuid"

	"go-storefront-api/internal/model"
)

func sameLine(l model.CartLine, productID uuid.UUID, variantKey string) bool {
	return l.ProductID == productID && l.VariantKey == variantKey
}

// AddOrUpdate merges the line into the cart: an existing entry for the
// same product/variant gains the quantity and refreshes its unit-price
// snapshot, otherwise the line is appended. Lines with quantity < 1 are
// ignored.
func AddOrUpdate(lines []model.CartLine, line model.CartLine) []model.CartLine {
	if line.Quantity < 1 {
		return lines
	}
	for i := range lines {
		if sameLine(lines[i], line.ProductID, line.VariantKey) {
			lines[i].Quantity += line.Quantity
			lines[i].UnitPrice = line.UnitPrice
			lines[i].Name = line.Name
			return lines
		}
	}
	return append(lines, line)
}

// ChangeQuantity adjusts a line by delta. A resulting quantity of zero
// or below removes the line; a zero-quantity line is never kept and the
// quantity never goes negative. Unknown lines are left untouched.
func ChangeQuantity(lines []model.CartLine, productID uuid.UUID, variantKey string, delta int) []model.CartLine {
	for i := range lines {
		if !sameLine(lines[i], productID, variantKey) {
			continue
		}
		if lines[i].Quantity+delta <= 0 {
			return Remove(lines, productID, variantKey)
		}
		lines[i].Quantity += delta
		return lines
	}
	return lines
}

// Remove drops the matching line, preserving the order of the rest.
func Remove(lines []model.CartLine, productID uuid.UUID, variantKey string) []model.CartLine {
	out := lines[:0]
	for _, l := range lines {
		if !sameLine(l, productID, variantKey) {
			out = append(out, l)
		}
	}
	return out
}

// TotalItems is the summed quantity across all lines.
func TotalItems(lines []model.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// Subtotal recomputes the cart value from the current lines on every
// call; it is never cached.
func Subtotal(lines []model.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}
