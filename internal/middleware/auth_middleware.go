package middleware

import (
	"strings"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and puts the acting identity
// into the request context. The user is re-loaded so a deactivated
// account is locked out immediately, not at token expiry.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Account is disabled"})
		}

		c.Locals("actor_email", user.Email)
		c.Locals("actor_role", string(user.Role))
		c.Locals("actor_name", user.FullName)

		return c.Next()
	}
}

// ActorFromCtx rebuilds the actor set by RequireAuth. An empty actor
// (unknown role) fails closed at the rbac gate.
func ActorFromCtx(c *fiber.Ctx) model.Actor {
	email, _ := c.Locals("actor_email").(string)
	role, _ := c.Locals("actor_role").(string)
	return model.Actor{Email: email, Role: model.Role(role)}
}
