package service

import (
	"go-storefront-api/internal/events"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/pricing"
	"go-storefront-api/internal/rbac"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/stock"
	"go-storefront-api/internal/ws"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// shippingRates maps the offered shipping methods to their flat cost.
// The cost is always resolved server-side; the payload only names the
// method.
var shippingRates = map[string]float64{
	"insideDhaka":  60,
	"outsideDhaka": 120,
}

type PlaceOrderItem struct {
	ProductID  uuid.UUID `json:"product_id" validate:"uuid_required"`
	VariantKey string    `json:"variant_key"`
	Quantity   int       `json:"quantity" validate:"required,gte=1"`
}

type PlaceOrderRequest struct {
	CustomerInfo   model.CustomerInfo   `json:"customer_info"`
	Items          []PlaceOrderItem     `json:"items" validate:"required,min=1,dive"`
	ShippingMethod string               `json:"shipping_method" validate:"required"`
	PaymentMethod  model.PaymentMethod  `json:"payment_method" validate:"required,oneof=cashOnDelivery mobileBanking"`
	ManualPayment  *model.ManualPayment `json:"manual_payment,omitempty"`
}

type CheckoutService interface {
	PlaceOrder(actor model.Actor, req *PlaceOrderRequest) (*model.Order, error)
}

type checkoutService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	db          *gorm.DB
	publisher   *events.Publisher
	wsHub       *ws.Hub
}

func NewCheckoutService(
	pRepo repository.ProductRepository,
	oRepo repository.OrderRepository,
	cRepo repository.CartRepository,
	db *gorm.DB,
	publisher *events.Publisher,
	hub *ws.Hub,
) CheckoutService {
	return &checkoutService{
		productRepo: pRepo,
		orderRepo:   oRepo,
		cartRepo:    cRepo,
		db:          db,
		publisher:   publisher,
		wsHub:       hub,
	}
}

// PlaceOrder validates the payload, then prices, reserves and decrements
// stock for every item inside one database transaction. Each product
// row is locked FOR UPDATE before its stock is touched, so two
// concurrent checkouts on the same product serialize and the combined
// quantity can never oversell. A rollback releases every reservation
// taken so far.
func (s *checkoutService) PlaceOrder(actor model.Actor, req *PlaceOrderRequest) (*model.Order, error) {
	if err := rbac.Check(actor, rbac.ActionCreateOrder, nil); err != nil {
		return nil, err
	}

	// A customer always orders as themselves; the order's ownership
	// follows the authenticated identity, not the typed-in email.
	if actor.Role == model.RoleCustomer {
		req.CustomerInfo.Email = actor.Email
	}

	// Nested structs (customer info, manual payment when present) are
	// validated along with the envelope.
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	switch req.PaymentMethod {
	case model.PaymentMobileBanking:
		if req.ManualPayment == nil {
			return nil, ErrManualPaymentRequired
		}
	default:
		req.ManualPayment = nil
	}

	shippingCost, ok := shippingRates[req.ShippingMethod]
	if !ok {
		return nil, ErrUnknownShippingMethod
	}

	order := &model.Order{
		CustomerInfo:   req.CustomerInfo,
		ShippingMethod: req.ShippingMethod,
		ShippingCost:   shippingCost,
		PaymentMethod:  req.PaymentMethod,
		ManualPayment:  req.ManualPayment,
		Status:         model.OrderPending,
	}
	order.CreatedBy = actor.Email
	order.UpdatedBy = actor.Email

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		for _, it := range req.Items {
			product, err := s.productRepo.LockByID(tx, it.ProductID)
			if err != nil {
				return ErrProductUnavailable
			}
			if product.Status != model.ProductPublished {
				return ErrProductUnavailable
			}

			variant := product.VariantByColor(it.VariantKey)
			if it.VariantKey != "" && variant == nil {
				return ErrVariantNotFound
			}

			if order.SellerEmail == "" {
				order.SellerEmail = product.SellerEmail
			} else if order.SellerEmail != product.SellerEmail {
				return ErrMixedSellers
			}

			quote, err := pricing.Resolve(product, variant, it.Quantity)
			if err != nil {
				return err
			}

			// Snapshot the variant as sold, before the decrement below
			// mutates the live one.
			var snapshot *model.Variant
			if variant != nil {
				clone := variant.Clone()
				snapshot = &clone
			}

			reservation, err := stock.Reserve(product, variant, it.Quantity)
			if err != nil {
				return err
			}
			if err := reservation.Apply(product); err != nil {
				return err
			}
			product.UpdatedBy = actor.Email
			if err := s.productRepo.Save(tx, product); err != nil {
				return err
			}

			item := model.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: quote.UnitPrice,
				Quantity:  it.Quantity,
				LineTotal: quote.LineTotal,
				Variant:   snapshot,
			}
			order.Items = append(order.Items, item)
			subtotal += quote.LineTotal
		}

		order.Subtotal = subtotal
		order.TotalAmount = subtotal + order.ShippingCost

		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	// Best effort: the cart served its purpose once the order exists.
	_ = s.cartRepo.DeleteByOwner(order.CustomerInfo.Email)

	s.publisher.OrderPlaced(order)
	go s.wsHub.BroadcastJSON("order_update", order)

	return order, nil
}
