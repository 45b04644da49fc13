package service

import (
	"fmt"
	"strings"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/upc"
	"go-3pl-warehouse/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	ListProducts(clientID string) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductByUPC(code string) (*model.Product, error)
	CreateProduct(req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	SKU         string  `json:"sku" validate:"required"`
	UPC         *string `json:"upc"`
	ClientID    string  `json:"clientId" validate:"uuid_required"`
	Description string  `json:"description"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
}

// UpdateProductRequest is partial: nil keeps the stored value
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	SKU         *string `json:"sku"`
	UPC         *string `json:"upc"`
	ClientID    *string `json:"clientId"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
}

type productService struct {
	productRepo repository.ProductRepository
	adjuster    *stockAdjuster
	db          *gorm.DB
	notifier    Notifier
}

func NewProductService(productRepo repository.ProductRepository, transactionRepo repository.TransactionRepository, db *gorm.DB, notifier Notifier) ProductService {
	return &productService{
		productRepo: productRepo,
		adjuster:    &stockAdjuster{productRepo: productRepo, transactionRepo: transactionRepo},
		db:          db,
		notifier:    notifierOrNoop(notifier),
	}
}

// normalizeUPC stores scanner-folded codes, blank means none
func normalizeUPC(code *string) *string {
	if code == nil {
		return nil
	}
	v := upc.Normalize(*code)
	if v == "" {
		return nil
	}
	return &v
}

func (s *productService) ListProducts(clientID string) ([]model.Product, error) {
	id, err := optionalID(clientID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.FindAll(id)
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, "Product")
	}
	return product, nil
}

func (s *productService) GetProductByUPC(code string) (*model.Product, error) {
	product, err := s.productRepo.FindByUPC(upc.Normalize(code))
	if err != nil {
		return nil, lookupError(err, "Product")
	}
	return product, nil
}

func (s *productService) skuTaken(sku string) error {
	_, err := s.productRepo.FindBySKU(sku)
	exists, err := taken(err)
	if err != nil {
		return err
	}
	if exists {
		return newError(ErrConflict, "SKU must be unique")
	}
	return nil
}

func (s *productService) CreateProduct(req *CreateProductRequest) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.TrimSpace(req.SKU)
	if err := requireFields(req, "Name, SKU, and client ID are required"); err != nil {
		return nil, err
	}

	if err := s.skuTaken(req.SKU); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		UPC:         normalizeUPC(req.UPC),
		ClientID:    uuid.MustParse(req.ClientID),
		Description: req.Description,
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.notifier.Publish(ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  "product_created",
		Message: "Product '" + product.Name + "' created",
		Data:    product,
	})
	return product, nil
}

// UpdateProduct edits the descriptive columns from a partial request. A quantity,
// when given, is applied on the locked row and recorded as a stock movement.
func (s *productService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, "Product")
	}

	sku := existing.SKU
	if req.SKU != nil && strings.TrimSpace(*req.SKU) != "" {
		sku = strings.TrimSpace(*req.SKU)
		if sku != existing.SKU {
			if err := s.skuTaken(sku); err != nil {
				return nil, err
			}
		}
	}

	clientID := existing.ClientID
	if req.ClientID != nil && strings.TrimSpace(*req.ClientID) != "" {
		clientID, err = uuid.Parse(strings.TrimSpace(*req.ClientID))
		if err != nil {
			return nil, validationError("clientId must be a valid id")
		}
	}

	var (
		updated  *model.Product
		movement *model.Transaction
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-read under the lock so the quantity returned is the committed one
		product, err := s.productRepo.LockByID(tx, id)
		if err != nil {
			return lookupError(err, "Product")
		}

		product.SKU = sku
		product.ClientID = clientID
		product.Name = keepUnlessBlank(req.Name, product.Name)
		product.Description = keepUnlessNil(req.Description, product.Description)
		if req.UPC != nil {
			product.UPC = normalizeUPC(req.UPC)
		}
		if err := s.productRepo.UpdateDetails(tx, product); err != nil {
			return err
		}

		if req.Quantity != nil {
			notes := "Manual quantity edit"
			record, locked, err := s.adjuster.setQuantity(tx, id, *req.Quantity, &notes)
			if err != nil {
				return err
			}
			product.Quantity = locked.Quantity
			movement = record
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  "product_updated",
		Message: "Product '" + updated.Name + "' updated",
		Data:    updated,
	})
	if movement != nil {
		s.notifier.Publish(ws.Event{
			Type:    ws.EventStockUpdate,
			Action:  string(movement.Type),
			Message: fmt.Sprintf("Quantity of '%s' set to %d", updated.Name, updated.Quantity),
			Data:    map[string]interface{}{"transaction": movement},
		})
	}
	return updated, nil
}

// DeleteProduct removes the row only; its audit trail stays in transactions
func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return lookupError(err, "Product")
	}
	return s.productRepo.Delete(id)
}
