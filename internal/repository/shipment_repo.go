package repository

import (
	"go-3pl-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentRepository interface {
	Create(tx *gorm.DB, shipment *model.Shipment) error
	CreateItem(tx *gorm.DB, item *model.ShipmentItem) error
	FindAll(clientID *uuid.UUID) ([]model.Shipment, error)
	FindByID(id uuid.UUID) (*model.Shipment, error)
	FindItems(shipmentID uuid.UUID) ([]model.ShipmentItem, error)
}

type shipmentRepo struct {
	db *gorm.DB
}

func NewShipmentRepo(db *gorm.DB) ShipmentRepository {
	return &shipmentRepo{db}
}

func (r *shipmentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *shipmentRepo) Create(tx *gorm.DB, shipment *model.Shipment) error {
	return r.conn(tx).Omit("Items", "Client", "BoxType").Create(shipment).Error
}

func (r *shipmentRepo) CreateItem(tx *gorm.DB, item *model.ShipmentItem) error {
	return r.conn(tx).Omit("Product").Create(item).Error
}

func (r *shipmentRepo) FindAll(clientID *uuid.UUID) ([]model.Shipment, error) {
	shipments := []model.Shipment{}
	query := r.db.Preload("Client").Preload("BoxType").Order("created_at DESC")
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}
	err := query.Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepo) FindByID(id uuid.UUID) (*model.Shipment, error) {
	var shipment model.Shipment
	err := r.db.
		Preload("Client").
		Preload("BoxType").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		First(&shipment, "id = ?", id).Error
	return &shipment, err
}

func (r *shipmentRepo) FindItems(shipmentID uuid.UUID) ([]model.ShipmentItem, error) {
	items := []model.ShipmentItem{}
	err := r.db.Preload("Product").
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
