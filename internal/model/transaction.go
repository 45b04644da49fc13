package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxInbound  TransactionType = "inbound"
	TxOutbound TransactionType = "outbound"
)

// Valid reports whether t is one of the known movement types
func (t TransactionType) Valid() bool {
	return t == TxInbound || t == TxOutbound
}

// Transaction is the append-only audit row of a stock movement
type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Type             TransactionType `gorm:"type:varchar(10);not null;index" json:"type"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product          *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	PreviousQuantity int             `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int             `gorm:"not null" json:"new_quantity"`
	Reference        *string         `gorm:"type:varchar(255)" json:"reference"`
	Notes            *string         `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
