package database

import (
	"go-3pl-warehouse/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or alters every table the service uses
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Client{},
		&model.Product{},
		&model.Transaction{},
		&model.BoxType{},
		&model.Shipment{},
		&model.ShipmentItem{},
		&model.User{},
	)
}
