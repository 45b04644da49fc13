package handler

import (
	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BoxHandler struct {
	service service.BoxService
}

func NewBoxHandler(s service.BoxService) *BoxHandler {
	return &BoxHandler{service: s}
}

func (h *BoxHandler) GetBoxes(c *fiber.Ctx) error {
	boxes, err := h.service.ListBoxes()
	if err != nil {
		return respondError(c, err, "Failed to fetch box types")
	}
	return c.JSON(boxes)
}

func (h *BoxHandler) GetBox(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Box type")
	if err != nil {
		return respondError(c, err, "Failed to fetch box type")
	}
	box, err := h.service.GetBox(id)
	if err != nil {
		return respondError(c, err, "Failed to fetch box type")
	}
	return c.JSON(box)
}

// GetBoxByBarcode GET /api/boxes/barcode/:barcode, active boxes only
func (h *BoxHandler) GetBoxByBarcode(c *fiber.Ctx) error {
	box, err := h.service.GetBoxByBarcode(c.Params("barcode"))
	if err != nil {
		return respondError(c, err, "Failed to fetch box type")
	}
	return c.JSON(box)
}

func (h *BoxHandler) CreateBox(c *fiber.Ctx) error {
	var req service.CreateBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	box, err := h.service.CreateBox(&req)
	if err != nil {
		return respondError(c, err, "Failed to create box type")
	}
	return c.Status(fiber.StatusCreated).JSON(box)
}

func (h *BoxHandler) UpdateBox(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Box type")
	if err != nil {
		return respondError(c, err, "Failed to update box type")
	}
	var req service.UpdateBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	box, err := h.service.UpdateBox(id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update box type")
	}
	return c.JSON(box)
}

func (h *BoxHandler) DeleteBox(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Box type")
	if err != nil {
		return respondError(c, err, "Failed to delete box type")
	}
	if err := h.service.DeleteBox(id); err != nil {
		return respondError(c, err, "Failed to delete box type")
	}
	return c.JSON(fiber.Map{"message": "Box type deleted successfully"})
}
