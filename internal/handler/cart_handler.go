package handler

import (
	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(middleware.ActorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req service.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.AddItem(middleware.ActorFromCtx(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(cart)
}

// ChangeQuantity adjusts one line by a signed delta: body {"delta": -1}.
func (h *CartHandler) ChangeQuantity(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var body struct {
		VariantKey string `json:"variant_key"`
		Delta      int    `json:"delta"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.ChangeQuantity(middleware.ActorFromCtx(c), productID, body.VariantKey, body.Delta)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	variantKey := c.Query("variant")

	cart, err := h.service.RemoveItem(middleware.ActorFromCtx(c), productID, variantKey)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.service.Clear(middleware.ActorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
