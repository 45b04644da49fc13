package repository

import (
	"go-3pl-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoxRepository interface {
	Create(box *model.BoxType) error
	FindAll() ([]model.BoxType, error)
	FindByID(id uuid.UUID) (*model.BoxType, error)
	FindByBarcode(barcode string) (*model.BoxType, error)
	FindActiveByBarcode(db *gorm.DB, barcode string) (*model.BoxType, error)
	FindActiveByID(db *gorm.DB, id uuid.UUID) (*model.BoxType, error)
	Update(box *model.BoxType) error
	Delete(id uuid.UUID) error
}

type boxRepo struct {
	db *gorm.DB
}

func NewBoxRepo(db *gorm.DB) BoxRepository {
	return &boxRepo{db}
}

func (r *boxRepo) Create(box *model.BoxType) error {
	return r.db.Create(box).Error
}

func (r *boxRepo) FindAll() ([]model.BoxType, error) {
	boxes := []model.BoxType{}
	err := r.db.Order("name").Find(&boxes).Error
	return boxes, err
}

func (r *boxRepo) FindByID(id uuid.UUID) (*model.BoxType, error) {
	var box model.BoxType
	err := r.db.First(&box, "id = ?", id).Error
	return &box, err
}

// FindByBarcode ignores the active flag, it backs the uniqueness check
func (r *boxRepo) FindByBarcode(barcode string) (*model.BoxType, error) {
	var box model.BoxType
	err := r.db.First(&box, "barcode = ?", barcode).Error
	return &box, err
}

// FindActiveByBarcode runs on db so shipment fulfillment can pass its transaction
func (r *boxRepo) FindActiveByBarcode(db *gorm.DB, barcode string) (*model.BoxType, error) {
	if db == nil {
		db = r.db
	}
	var box model.BoxType
	err := db.Where("barcode = ? AND active = ?", barcode, true).First(&box).Error
	return &box, err
}

func (r *boxRepo) FindActiveByID(db *gorm.DB, id uuid.UUID) (*model.BoxType, error) {
	if db == nil {
		db = r.db
	}
	var box model.BoxType
	err := db.Where("id = ? AND active = ?", id, true).First(&box).Error
	return &box, err
}

func (r *boxRepo) Update(box *model.BoxType) error {
	return r.db.Save(box).Error
}

func (r *boxRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.BoxType{}, "id = ?", id).Error
}
