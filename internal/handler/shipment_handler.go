package handler

import (
	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShipmentHandler struct {
	service service.ShipmentService
}

func NewShipmentHandler(s service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: s}
}

// GetShipments GET /api/shipments?clientId=
func (h *ShipmentHandler) GetShipments(c *fiber.Ctx) error {
	shipments, err := h.service.ListShipments(c.Query("clientId"))
	if err != nil {
		return respondError(c, err, "Failed to fetch shipments")
	}
	return c.JSON(shipments)
}

func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Shipment")
	if err != nil {
		return respondError(c, err, "Failed to fetch shipment")
	}
	shipment, err := h.service.GetShipment(id)
	if err != nil {
		return respondError(c, err, "Failed to fetch shipment")
	}
	return c.JSON(shipment)
}

// GetShipmentItems GET /api/shipments/:id/items
func (h *ShipmentHandler) GetShipmentItems(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Shipment")
	if err != nil {
		return respondError(c, err, "Failed to fetch shipment items")
	}
	items, err := h.service.ListShipmentItems(id)
	if err != nil {
		return respondError(c, err, "Failed to fetch shipment items")
	}
	return c.JSON(items)
}

func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var req service.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	shipment, err := h.service.CreateShipment(&req)
	if err != nil {
		return respondError(c, err, "Failed to create shipment")
	}
	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// CreateShipmentItem POST /api/shipments/shipment-items
func (h *ShipmentHandler) CreateShipmentItem(c *fiber.Ctx) error {
	var req service.CreateShipmentItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	item, err := h.service.CreateShipmentItem(&req)
	if err != nil {
		return respondError(c, err, "Failed to create shipment item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Quote POST /api/shipments/quote prices a packing session without touching stock
func (h *ShipmentHandler) Quote(c *fiber.Ctx) error {
	var req service.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	quote, err := h.service.QuoteShipment(&req)
	if err != nil {
		return respondError(c, err, "Failed to price shipment")
	}
	return c.JSON(quote)
}

// Fulfill POST /api/shipments/fulfill
func (h *ShipmentHandler) Fulfill(c *fiber.Ctx) error {
	var req service.FulfillRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	result, err := h.service.FulfillShipment(&req)
	if err != nil {
		return respondError(c, err, "Failed to fulfill shipment")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
