package cart

import (
	"testing"

	"github.com/google/uuid"

	"go-storefront-api/internal/model"
)

func line(pid uuid.UUID, key string, price float64, qty int) model.CartLine {
	return model.CartLine{ProductID: pid, VariantKey: key, UnitPrice: price, Quantity: qty}
}

func TestAddOrUpdate(t *testing.T) {
	pid := uuid.New()
	other := uuid.New()

	t.Run("appends new line", func(t *testing.T) {
		lines := AddOrUpdate(nil, line(pid, "", 100, 2))
		if len(lines) != 1 || lines[0].Quantity != 2 {
			t.Fatalf("unexpected lines: %+v", lines)
		}
	})

	t.Run("merges same product and variant", func(t *testing.T) {
		lines := AddOrUpdate(nil, line(pid, "Red", 100, 2))
		lines = AddOrUpdate(lines, line(pid, "Red", 90, 1))
		if len(lines) != 1 {
			t.Fatalf("expected merged line, got %d lines", len(lines))
		}
		if lines[0].Quantity != 3 {
			t.Errorf("quantity = %d, want 3", lines[0].Quantity)
		}
		if lines[0].UnitPrice != 90 {
			t.Errorf("price snapshot not refreshed: %v", lines[0].UnitPrice)
		}
	})

	t.Run("same product different variant stays separate", func(t *testing.T) {
		lines := AddOrUpdate(nil, line(pid, "Red", 100, 1))
		lines = AddOrUpdate(lines, line(pid, "Blue", 100, 1))
		lines = AddOrUpdate(lines, line(other, "", 50, 1))
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
	})

	t.Run("ignores non-positive quantity", func(t *testing.T) {
		if lines := AddOrUpdate(nil, line(pid, "", 100, 0)); len(lines) != 0 {
			t.Fatalf("zero-quantity line must not be stored: %+v", lines)
		}
	})
}

func TestChangeQuantity(t *testing.T) {
	pid := uuid.New()

	t.Run("increments and decrements", func(t *testing.T) {
		lines := []model.CartLine{line(pid, "", 100, 2)}
		lines = ChangeQuantity(lines, pid, "", 3)
		if lines[0].Quantity != 5 {
			t.Fatalf("quantity = %d, want 5", lines[0].Quantity)
		}
		lines = ChangeQuantity(lines, pid, "", -4)
		if lines[0].Quantity != 1 {
			t.Fatalf("quantity = %d, want 1", lines[0].Quantity)
		}
	})

	t.Run("reaching zero removes the line", func(t *testing.T) {
		lines := []model.CartLine{line(pid, "", 100, 2)}
		lines = ChangeQuantity(lines, pid, "", -2)
		if len(lines) != 0 {
			t.Fatalf("line must be removed, got %+v", lines)
		}
	})

	t.Run("overshooting below zero clamps to removal", func(t *testing.T) {
		lines := []model.CartLine{line(pid, "", 100, 2)}
		lines = ChangeQuantity(lines, pid, "", -10)
		if len(lines) != 0 {
			t.Fatalf("line must be removed, got %+v", lines)
		}
	})

	t.Run("unknown line untouched", func(t *testing.T) {
		lines := []model.CartLine{line(pid, "", 100, 2)}
		lines = ChangeQuantity(lines, uuid.New(), "", -5)
		if len(lines) != 1 || lines[0].Quantity != 2 {
			t.Fatalf("cart must be unchanged, got %+v", lines)
		}
	})

	t.Run("never leaves a non-positive quantity", func(t *testing.T) {
		lines := []model.CartLine{line(pid, "Red", 100, 3)}
		for _, delta := range []int{-1, -1, -1, -1} {
			lines = ChangeQuantity(lines, pid, "Red", delta)
			for _, l := range lines {
				if l.Quantity <= 0 {
					t.Fatalf("line with quantity %d persisted", l.Quantity)
				}
			}
		}
	})
}

func TestRemove(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	lines := []model.CartLine{line(a, "", 100, 1), line(a, "Red", 120, 2), line(b, "", 50, 1)}
	lines = Remove(lines, a, "Red")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if l.ProductID == a && l.VariantKey == "Red" {
			t.Fatal("removed line still present")
		}
	}
}

func TestTotals(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	lines := []model.CartLine{line(a, "", 100, 2), line(b, "Red", 250.5, 3)}

	if got := TotalItems(lines); got != 5 {
		t.Errorf("TotalItems = %d, want 5", got)
	}
	if got := Subtotal(lines); got != 100*2+250.5*3 {
		t.Errorf("Subtotal = %v, want %v", got, 100*2+250.5*3)
	}

	// Subtotal always reflects the current lines.
	lines = ChangeQuantity(lines, a, "", -1)
	if got := Subtotal(lines); got != 100+250.5*3 {
		t.Errorf("Subtotal after change = %v, want %v", got, 100+250.5*3)
	}
}
