package handler

import (
	"errors"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/orders"
	"go-storefront-api/internal/pricing"
	"go-storefront-api/internal/rbac"
	"go-storefront-api/internal/service"
	"go-storefront-api/internal/stock"
	"go-storefront-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fail maps the typed core errors onto HTTP statuses. Errors outside
// the known set (driver faults, broken invariants) surface as a generic
// 500 so internals never reach the client.
func fail(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, rbac.ErrForbidden), errors.Is(err, rbac.ErrUnknownRole):
		status = fiber.StatusForbidden
	case errors.Is(err, orders.ErrIllegalTransition), errors.Is(err, stock.ErrInsufficientStock):
		status = fiber.StatusConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrProductUnavailable), errors.Is(err, service.ErrVariantNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, validator.ErrValidation),
		errors.Is(err, stock.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, model.ErrInvalidPrice),
		errors.Is(err, service.ErrManualPaymentRequired),
		errors.Is(err, service.ErrUnknownShippingMethod),
		errors.Is(err, service.ErrMixedSellers),
		errors.Is(err, service.ErrInvalidApprovalStatus):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrAccountDisabled):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken):
		status = fiber.StatusConflict
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
