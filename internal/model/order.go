package model

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cashOnDelivery"
	PaymentMobileBanking  PaymentMethod = "mobileBanking"
)

// CustomerInfo is the delivery contact captured at checkout.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Notes   string `json:"notes"`
}

// ManualPayment holds the proof of a mobile banking payment. Required
// exactly when the payment method is mobileBanking.
type ManualPayment struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Screenshot    string `json:"screenshot" validate:"required"`
}

// OrderItem is an immutable snapshot of a purchased line: the product
// name, unit price and variant are frozen at order time so later
// catalog edits never change what was sold.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal float64   `json:"line_total"`
	Variant   *Variant  `json:"variant,omitempty"`
}

// Order is a placed order. Orders are never deleted; terminal statuses
// are retained for audit. TotalAmount is always recomputed server-side
// as subtotal + shipping cost, never trusted from input.
type Order struct {
	BaseModel
	CustomerInfo   CustomerInfo   `gorm:"embedded;embeddedPrefix:customer_" json:"customer_info"`
	Items          []OrderItem    `gorm:"type:jsonb;serializer:json" json:"items"`
	Subtotal       float64        `json:"subtotal"`
	ShippingMethod string         `gorm:"type:varchar(50)" json:"shipping_method"`
	ShippingCost   float64        `json:"shipping_cost"`
	TotalAmount    float64        `json:"total_amount"`
	PaymentMethod  PaymentMethod  `gorm:"type:varchar(20)" json:"payment_method"`
	ManualPayment  *ManualPayment `gorm:"type:jsonb;serializer:json" json:"manual_payment,omitempty"`
	Status         OrderStatus    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	SellerEmail    string         `gorm:"type:varchar(255);index" json:"seller_email"`
}

// OwnerSellerEmail implements the rbac resource contract.
func (o *Order) OwnerSellerEmail() string { return o.SellerEmail }

// OwnerCustomerEmail implements the rbac resource contract.
func (o *Order) OwnerCustomerEmail() string { return o.CustomerInfo.Email }
