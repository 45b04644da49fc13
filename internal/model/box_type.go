package model

import "github.com/shopspring/decimal"

// BoxType is a packaging option scanned at the packing station by its barcode
type BoxType struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Barcode     string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"barcode"`
	Dimensions  string          `gorm:"type:varchar(100)" json:"dimensions"`
	Description string          `gorm:"type:text" json:"description"`
	Active      bool            `gorm:"default:true" json:"active"`
}

func (BoxType) TableName() string {
	return "box_types"
}
