package handler

import (
	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	service service.ClientService
}

func NewClientHandler(s service.ClientService) *ClientHandler {
	return &ClientHandler{service: s}
}

// GetClients GET /api/clients
func (h *ClientHandler) GetClients(c *fiber.Ctx) error {
	clients, err := h.service.ListClients()
	if err != nil {
		return respondError(c, err, "Failed to fetch clients")
	}
	return c.JSON(clients)
}

// GetClient GET /api/clients/:id
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Client")
	if err != nil {
		return respondError(c, err, "Failed to fetch client")
	}
	client, err := h.service.GetClient(id)
	if err != nil {
		return respondError(c, err, "Failed to fetch client")
	}
	return c.JSON(client)
}

// CreateClient POST /api/clients
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req service.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	client, err := h.service.CreateClient(&req)
	if err != nil {
		return respondError(c, err, "Failed to create client")
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// UpdateClient PUT /api/clients/:id
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Client")
	if err != nil {
		return respondError(c, err, "Failed to update client")
	}
	var req service.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	client, err := h.service.UpdateClient(id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update client")
	}
	return c.JSON(client)
}

// DeleteClient DELETE /api/clients/:id
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Client")
	if err != nil {
		return respondError(c, err, "Failed to delete client")
	}
	if err := h.service.DeleteClient(id); err != nil {
		return respondError(c, err, "Failed to delete client")
	}
	return c.JSON(fiber.Map{"message": "Client deleted successfully"})
}
