package handler

import (
	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the overview block, scoped to the actor's role.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(middleware.ActorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
