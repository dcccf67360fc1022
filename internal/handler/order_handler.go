package handler

import (
	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
}

func NewOrderHandler(checkout service.CheckoutService, orders service.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// Place is the checkout endpoint: it creates a pending order and
// decrements stock atomically.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req service.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.checkout.PlaceOrder(middleware.ActorFromCtx(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "order_id": order.ID, "data": order})
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.orders.ListOrders(middleware.ActorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orders.GetOrder(middleware.ActorFromCtx(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// UpdateStatus drives one lifecycle transition: body {"status": "processing"}.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var body struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.orders.UpdateStatus(middleware.ActorFromCtx(c), id, body.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order updated", "data": order})
}
