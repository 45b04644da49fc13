package handler

import (
	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.InventoryService
}

func NewTransactionHandler(s service.InventoryService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// GetTransactions GET /api/transactions?type=inbound|outbound
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.ListTransactions(c.Query("type"))
	if err != nil {
		return respondError(c, err, "Failed to fetch transactions")
	}
	return c.JSON(transactions)
}

// GetProductTransactions GET /api/transactions/product/:productId
func (h *TransactionHandler) GetProductTransactions(c *fiber.Ctx) error {
	id, err := pathID(c, "productId", "Product")
	if err != nil {
		return respondError(c, err, "Failed to fetch transactions")
	}
	transactions, err := h.service.ListProductTransactions(id)
	if err != nil {
		return respondError(c, err, "Failed to fetch transactions")
	}
	return c.JSON(transactions)
}

// Inbound POST /api/transactions/inbound
func (h *TransactionHandler) Inbound(c *fiber.Ctx) error {
	var req service.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	tx, err := h.service.RecordInbound(&req)
	if err != nil {
		return respondError(c, err, "Failed to record inbound transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// InboundBatch POST /api/transactions/inbound/batch, all items or none
func (h *TransactionHandler) InboundBatch(c *fiber.Ctx) error {
	var req service.BatchInboundRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	transactions, err := h.service.RecordInboundBatch(&req)
	if err != nil {
		return respondError(c, err, "Failed to record inbound batch")
	}
	return c.Status(fiber.StatusCreated).JSON(transactions)
}

// Outbound POST /api/transactions/outbound
func (h *TransactionHandler) Outbound(c *fiber.Ctx) error {
	var req service.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	tx, err := h.service.RecordOutbound(&req)
	if err != nil {
		return respondError(c, err, "Failed to record outbound transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}
