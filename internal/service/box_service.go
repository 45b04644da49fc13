package service

import (
	"strings"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/upc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BoxService interface {
	ListBoxes() ([]model.BoxType, error)
	GetBox(id uuid.UUID) (*model.BoxType, error)
	GetBoxByBarcode(barcode string) (*model.BoxType, error)
	CreateBox(req *CreateBoxRequest) (*model.BoxType, error)
	UpdateBox(id uuid.UUID, req *UpdateBoxRequest) (*model.BoxType, error)
	DeleteBox(id uuid.UUID) error
}

type CreateBoxRequest struct {
	Name        string           `json:"name" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Barcode     string           `json:"barcode" validate:"required"`
	Dimensions  string           `json:"dimensions"`
	Description string           `json:"description"`
}

// UpdateBoxRequest is partial: nil keeps the stored value
type UpdateBoxRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Barcode     *string          `json:"barcode"`
	Dimensions  *string          `json:"dimensions"`
	Description *string          `json:"description"`
	Active      *bool            `json:"active"`
}

type boxService struct {
	boxRepo repository.BoxRepository
}

func NewBoxService(boxRepo repository.BoxRepository) BoxService {
	return &boxService{boxRepo: boxRepo}
}

func (s *boxService) ListBoxes() ([]model.BoxType, error) {
	return s.boxRepo.FindAll()
}

func (s *boxService) GetBox(id uuid.UUID) (*model.BoxType, error) {
	box, err := s.boxRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, "Box type")
	}
	return box, nil
}

// GetBoxByBarcode only resolves boxes still in use at the packing station
func (s *boxService) GetBoxByBarcode(barcode string) (*model.BoxType, error) {
	box, err := s.boxRepo.FindActiveByBarcode(nil, upc.Fold(barcode))
	if err != nil {
		return nil, lookupError(err, "Box type")
	}
	return box, nil
}

func (s *boxService) barcodeTaken(barcode string) error {
	_, err := s.boxRepo.FindByBarcode(barcode)
	exists, err := taken(err)
	if err != nil {
		return err
	}
	if exists {
		return newError(ErrConflict, "Barcode must be unique")
	}
	return nil
}

func (s *boxService) CreateBox(req *CreateBoxRequest) (*model.BoxType, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Barcode = upc.Fold(req.Barcode)
	if err := requireFields(req, "Name, price, and barcode are required"); err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, validationError("Name, price, and barcode are required")
	}

	if err := s.barcodeTaken(req.Barcode); err != nil {
		return nil, err
	}

	box := &model.BoxType{
		Name:        req.Name,
		Price:       *req.Price,
		Barcode:     req.Barcode,
		Dimensions:  req.Dimensions,
		Description: req.Description,
		Active:      true,
	}
	if err := s.boxRepo.Create(box); err != nil {
		return nil, err
	}
	return box, nil
}

func (s *boxService) UpdateBox(id uuid.UUID, req *UpdateBoxRequest) (*model.BoxType, error) {
	existing, err := s.boxRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, "Box type")
	}

	if req.Barcode != nil && upc.Fold(*req.Barcode) != "" {
		barcode := upc.Fold(*req.Barcode)
		if barcode != existing.Barcode {
			if err := s.barcodeTaken(barcode); err != nil {
				return nil, err
			}
			existing.Barcode = barcode
		}
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, validationError("price must not be negative")
		}
		existing.Price = *req.Price
	}

	existing.Name = keepUnlessBlank(req.Name, existing.Name)
	existing.Dimensions = keepUnlessNil(req.Dimensions, existing.Dimensions)
	existing.Description = keepUnlessNil(req.Description, existing.Description)
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if err := s.boxRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteBox removes the row only; past shipments keep their box_type_id
func (s *boxService) DeleteBox(id uuid.UUID) error {
	if _, err := s.boxRepo.FindByID(id); err != nil {
		return lookupError(err, "Box type")
	}
	return s.boxRepo.Delete(id)
}
