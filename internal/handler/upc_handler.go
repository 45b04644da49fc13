package handler

import (
	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UPCHandler struct {
	service service.CatalogService
}

func NewUPCHandler(s service.CatalogService) *UPCHandler {
	return &UPCHandler{service: s}
}

// Lookup GET /api/upc/:upc and /api/upc/lookup/:upc
func (h *UPCHandler) Lookup(c *fiber.Ctx) error {
	result, err := h.service.LookupUPC(c.Params("upc"))
	if err != nil {
		return respondError(c, err, "Failed to lookup UPC")
	}
	return c.JSON(result)
}

// UpdateProductNames POST /api/fix/update-product-names
func (h *UPCHandler) UpdateProductNames(c *fiber.Ctx) error {
	report, err := h.service.BackfillProductNames(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to update product names")
	}
	return c.JSON(report)
}
