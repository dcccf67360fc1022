package pricing

import (
	"errors"
	"testing"

	"go-storefront-api/internal/model"
)

func fp(f float64) *float64 { return &f }

func TestResolve(t *testing.T) {
	cases := []struct {
		name         string
		product      model.Product
		variant      *model.Variant
		qty          int
		wantUnit     float64
		wantTotal    float64
		wantDiscount int
	}{
		{
			name:      "base price only",
			product:   model.Product{BasePrice: 1000},
			qty:       3,
			wantUnit:  1000,
			wantTotal: 3000,
		},
		{
			name:         "special price applies",
			product:      model.Product{BasePrice: 1000, SpecialPrice: fp(800)},
			qty:          2,
			wantUnit:     800,
			wantTotal:    1600,
			wantDiscount: 20,
		},
		{
			name:      "special equal to base ignored",
			product:   model.Product{BasePrice: 500, SpecialPrice: fp(500)},
			qty:       1,
			wantUnit:  500,
			wantTotal: 500,
		},
		{
			name:      "special above base ignored",
			product:   model.Product{BasePrice: 500, SpecialPrice: fp(600)},
			qty:       1,
			wantUnit:  500,
			wantTotal: 500,
		},
		{
			name:      "zero special ignored",
			product:   model.Product{BasePrice: 500, SpecialPrice: fp(0)},
			qty:       1,
			wantUnit:  500,
			wantTotal: 500,
		},
		{
			// A variant with its own price stands alone: the
			// product-level special never discounts it.
			name:      "variant price without variant special",
			product:   model.Product{BasePrice: 1000, SpecialPrice: fp(800)},
			variant:   &model.Variant{Color: "Red", Price: fp(1200)},
			qty:       2,
			wantUnit:  1200,
			wantTotal: 2400,
		},
		{
			name:         "variant with own special",
			product:      model.Product{BasePrice: 1000},
			variant:      &model.Variant{Color: "Blue", Price: fp(1200), SpecialPrice: fp(900)},
			qty:          1,
			wantUnit:     900,
			wantTotal:    900,
			wantDiscount: 25,
		},
		{
			name:         "variant without price inherits product pricing",
			product:      model.Product{BasePrice: 1000, SpecialPrice: fp(750)},
			variant:      &model.Variant{Color: "Green"},
			qty:          4,
			wantUnit:     750,
			wantTotal:    3000,
			wantDiscount: 25,
		},
		{
			name:         "discount percent rounds",
			product:      model.Product{BasePrice: 300, SpecialPrice: fp(200)},
			qty:          1,
			wantUnit:     200,
			wantTotal:    200,
			wantDiscount: 33,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Resolve(&tc.product, tc.variant, tc.qty)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if q.UnitPrice != tc.wantUnit {
				t.Errorf("UnitPrice = %v, want %v", q.UnitPrice, tc.wantUnit)
			}
			if q.LineTotal != tc.wantTotal {
				t.Errorf("LineTotal = %v, want %v", q.LineTotal, tc.wantTotal)
			}
			if q.DiscountPercent != tc.wantDiscount {
				t.Errorf("DiscountPercent = %v, want %v", q.DiscountPercent, tc.wantDiscount)
			}
			if q.LineTotal != q.UnitPrice*float64(tc.qty) {
				t.Errorf("line total %v is not unit %v x qty %d", q.LineTotal, q.UnitPrice, tc.qty)
			}
		})
	}
}

func TestResolveRejectsBadQuantity(t *testing.T) {
	p := model.Product{BasePrice: 100}
	for _, qty := range []int{0, -1, -100} {
		if _, err := Resolve(&p, nil, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

// Effective price never exceeds the candidate base.
func TestEffectiveNeverAboveBase(t *testing.T) {
	specials := []*float64{nil, fp(0), fp(50), fp(99.99), fp(100), fp(150)}
	for _, sp := range specials {
		p := model.Product{BasePrice: 100, SpecialPrice: sp}
		q, err := Resolve(&p, nil, 1)
		if err != nil {
			t.Fatal(err)
		}
		if q.UnitPrice > p.BasePrice {
			t.Fatalf("unit price %v exceeds base %v (special %v)", q.UnitPrice, p.BasePrice, sp)
		}
	}
}
