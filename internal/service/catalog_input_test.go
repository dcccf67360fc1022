package service

import (
	"encoding/json"
	"testing"

	"go-storefront-api/internal/model"
)

// Product writes arrive with mixed numeric encodings; the input DTO
// must normalize them all before they reach the model.
func TestProductInputNormalizesNumerics(t *testing.T) {
	payload := `{
		"name": "Wireless Mouse",
		"category": "electronics",
		"base_price": {"intPayload": "1500"},
		"special_price": "1200",
		"stock": 25,
		"variants": [
			{"color": "Red", "price": {"doublePayload": 1800.5}, "stock": "10"},
			{"color": "Blue"}
		]
	}`

	var in ProductInput
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var p model.Product
	in.apply(&p)

	if p.BasePrice != 1500 {
		t.Errorf("BasePrice = %v, want 1500", p.BasePrice)
	}
	if p.SpecialPrice == nil || *p.SpecialPrice != 1200 {
		t.Errorf("SpecialPrice = %v, want 1200", p.SpecialPrice)
	}
	if p.Stock != 25 {
		t.Errorf("Stock = %d, want 25", p.Stock)
	}
	if len(p.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(p.Variants))
	}

	red := p.Variants[0]
	if red.Price == nil || *red.Price != 1800.5 {
		t.Errorf("variant price = %v, want 1800.5", red.Price)
	}
	if red.Stock == nil || *red.Stock != 10 {
		t.Errorf("variant stock = %v, want 10", red.Stock)
	}

	blue := p.Variants[1]
	if blue.Price != nil || blue.Stock != nil {
		t.Errorf("bare variant must inherit product pricing and stock: %+v", blue)
	}

	if err := p.ValidatePricing(); err != nil {
		t.Fatalf("ValidatePricing: %v", err)
	}
}

func TestProductInputRejectsBadPricing(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"special above base", `{"name":"X","base_price":100,"special_price":150,"stock":1}`},
		{"zero base", `{"name":"X","base_price":0,"stock":1}`},
		{"unparsable base defaults to zero", `{"name":"X","base_price":"n/a","stock":1}`},
		{"duplicate variant colors", `{"name":"X","base_price":100,"variants":[{"color":"Red"},{"color":"Red"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in ProductInput
			if err := json.Unmarshal([]byte(tc.payload), &in); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			var p model.Product
			in.apply(&p)
			if err := p.ValidatePricing(); err == nil {
				t.Fatal("expected pricing validation to fail")
			}
		})
	}
}
