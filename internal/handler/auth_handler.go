package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	token, user, err := h.service.Login(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.Register(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Account created", "user": user})
}

// Role resolves the role bound to an email, the lookup the dashboard
// uses when it mounts.
func (h *AuthHandler) Role(c *fiber.Ctx) error {
	email := c.Params("email")
	role, err := h.service.RoleByEmail(email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"role": role})
}
