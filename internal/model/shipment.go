package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Shipment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client    *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	BoxTypeID uuid.UUID       `gorm:"type:uuid;not null" json:"box_type_id"`
	BoxType   *BoxType        `gorm:"foreignKey:BoxTypeID" json:"box_type,omitempty"`
	TotalCost decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_cost"`
	Reference *string         `gorm:"type:varchar(255)" json:"reference"`
	Notes     *string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`

	Items []ShipmentItem `gorm:"foreignKey:ShipmentID" json:"items,omitempty"`
}

// ShipmentItem records what was packed into a shipment
type ShipmentItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"shipment_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (i *ShipmentItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
