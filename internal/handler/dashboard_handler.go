package handler

import (
	"strconv"

	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns inbound/outbound units per day for charts
// Query params: days (default 7, at most 365)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		days = 0
	}

	movement, err := h.service.GetStockMovement(days)
	if err != nil {
		return respondError(c, err, "Failed to fetch stock movement")
	}
	return c.JSON(movement)
}

func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return respondError(c, err, "Failed to fetch dashboard stats")
	}
	return c.JSON(stats)
}
