package service

import (
	"errors"

	"go-storefront-api/internal/events"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/orders"
	"go-storefront-api/internal/rbac"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/stock"
	"go-storefront-api/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	UpdateStatus(actor model.Actor, orderID uuid.UUID, target model.OrderStatus) (*model.Order, error)
	GetOrder(actor model.Actor, orderID uuid.UUID) (*model.Order, error)
	ListOrders(actor model.Actor) ([]model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	publisher   *events.Publisher
	wsHub       *ws.Hub
}

func NewOrderService(
	oRepo repository.OrderRepository,
	pRepo repository.ProductRepository,
	db *gorm.DB,
	publisher *events.Publisher,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		productRepo: pRepo,
		db:          db,
		publisher:   publisher,
		wsHub:       hub,
	}
}

// UpdateStatus drives one lifecycle transition. The order row is locked
// FOR UPDATE for the whole transaction, so concurrent transitions on
// the same order serialize and each one sees the status the previous
// one wrote. A transition landing on cancelled restocks every item in
// the same transaction; no other transition touches stock.
func (s *orderService) UpdateStatus(actor model.Actor, orderID uuid.UUID, target model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	var prev model.OrderStatus

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(tx, orderID)
		if err != nil {
			return err
		}
		prev = order.Status

		if err := orders.Transition(order, target, actor); err != nil {
			return err
		}
		order.UpdatedBy = actor.Email

		if target == model.OrderCancelled {
			if err := s.restock(tx, order, actor.Email); err != nil {
				return err
			}
		}

		updated = order
		return s.orderRepo.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.OrderStatusChanged(updated, prev)
	go s.wsHub.BroadcastJSON("order_update", updated)

	return updated, nil
}

// restock returns every reserved unit of a cancelled order to the pool
// it was drawn from. Products deleted since the order was placed are
// skipped; their stock no longer exists to return to.
func (s *orderService) restock(tx *gorm.DB, order *model.Order, actorEmail string) error {
	for _, item := range order.Items {
		product, err := s.productRepo.LockByID(tx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}

		reservation := stock.Reservation{
			ProductID: product.ID,
			Quantity:  item.Quantity,
		}
		if item.Variant != nil && item.Variant.Stock != nil {
			reservation.VariantColor = item.Variant.Color
		}
		reservation.Release(product)
		product.UpdatedBy = actorEmail

		if err := s.productRepo.Save(tx, product); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) GetOrder(actor model.Actor, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := rbac.Check(actor, rbac.ActionViewOrder, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders scopes the listing to what the actor may see: admins all
// orders, sellers their own sales, customers their own purchases.
func (s *orderService) ListOrders(actor model.Actor) ([]model.Order, error) {
	switch actor.Role {
	case model.RoleAdmin:
		return s.orderRepo.FindAll()
	case model.RoleSeller:
		return s.orderRepo.FindBySeller(actor.Email)
	case model.RoleCustomer:
		return s.orderRepo.FindByCustomer(actor.Email)
	default:
		return nil, rbac.ErrUnknownRole
	}
}
