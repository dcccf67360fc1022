package model

import (
	"github.com/google/uuid"
)

// CartLine is one product (or product variant) entry in a cart. The
// unit price is a snapshot taken when the line was added; checkout
// re-resolves prices against the catalog before an order is placed.
type CartLine struct {
	ProductID  uuid.UUID `json:"product_id"`
	VariantKey string    `json:"variant_key,omitempty"`
	Name       string    `json:"name"`
	UnitPrice  float64   `json:"unit_price"`
	Quantity   int       `json:"quantity"`
}

// Cart is the single persistent cart of a storefront customer. Lines
// with quantity zero are never stored; mutations that would reach zero
// remove the line instead.
type Cart struct {
	BaseModel
	OwnerEmail string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"owner_email"`
	Items      []CartLine `gorm:"type:jsonb;serializer:json" json:"items"`
}
