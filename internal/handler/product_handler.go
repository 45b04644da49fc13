package handler

import (
	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts GET /api/products?clientId=
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Query("clientId"))
	if err != nil {
		return respondError(c, err, "Failed to fetch products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Product")
	if err != nil {
		return respondError(c, err, "Failed to fetch product")
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err, "Failed to fetch product")
	}
	return c.JSON(product)
}

// GetProductByUPC GET /api/products/upc/:upc
func (h *ProductHandler) GetProductByUPC(c *fiber.Ctx) error {
	product, err := h.service.GetProductByUPC(c.Params("upc"))
	if err != nil {
		return respondError(c, err, "Failed to fetch product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return respondError(c, err, "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Product")
	if err != nil {
		return respondError(c, err, "Failed to update product")
	}
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	product, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Product")
	if err != nil {
		return respondError(c, err, "Failed to delete product")
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err, "Failed to delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
