package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	SKU         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	UPC         *string   `gorm:"type:varchar(50);index" json:"upc"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client      *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Description string    `gorm:"type:text" json:"description"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
}

// LowStockThreshold marks products the dashboard flags for reorder
const LowStockThreshold = 10
