package repository

import (
	"go-3pl-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(clientID *uuid.UUID) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByUPC(upc string) (*model.Product, error)
	FindByNamePrefixWithUPC(prefix string) ([]model.Product, error)
	UpdateDetails(tx *gorm.DB, product *model.Product) error
	UpdateNameAndDescription(id uuid.UUID, name, description string) error
	Delete(id uuid.UUID) error

	// Used inside an inventory transaction
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	CompareAndSetQuantity(tx *gorm.DB, id uuid.UUID, expected, newQuantity int) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(clientID *uuid.UUID) ([]model.Product, error) {
	products := []model.Product{}
	query := r.db.Order("name")
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindByUPC(upc string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "upc = ?", upc).Error
	return &product, err
}

// FindByNamePrefixWithUPC returns products still carrying a placeholder name
func (r *productRepo) FindByNamePrefixWithUPC(prefix string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("upc IS NOT NULL AND upc <> ''").
		Where("name LIKE ?", prefix+"%").
		Order("created_at").
		Find(&products).Error
	return products, err
}

// UpdateDetails writes every column except quantity, which only moves through
// CompareAndSetQuantity so stock and its audit rows stay in step.
func (r *productRepo) UpdateDetails(tx *gorm.DB, product *model.Product) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"sku":         product.SKU,
			"upc":         product.UPC,
			"client_id":   product.ClientID,
			"description": product.Description,
		}).Error
}

func (r *productRepo) UpdateNameAndDescription(id uuid.UUID, name, description string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// LockByID reads the product row with FOR UPDATE where the dialect has row locks
func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	query := tx
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&product, "id = ?", id).Error
	return &product, err
}

// CompareAndSetQuantity writes newQuantity only if the stored quantity is still expected.
// It reports false when another writer got there first.
func (r *productRepo) CompareAndSetQuantity(tx *gorm.DB, id uuid.UUID, expected, newQuantity int) (bool, error) {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND quantity = ?", id, expected).
		Update("quantity", newQuantity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
