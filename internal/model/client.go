package model

// Client is a company whose stock is stored and shipped by the warehouse
type Client struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name"`
	Code          string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	ContactName   string `gorm:"type:varchar(255)" json:"contact_name"`
	Email         string `gorm:"type:varchar(255)" json:"email"`
	Phone         string `gorm:"type:varchar(50)" json:"phone"`
	StreetAddress string `gorm:"type:varchar(255)" json:"street_address"`
	City          string `gorm:"type:varchar(100)" json:"city"`
	State         string `gorm:"type:varchar(100)" json:"state"`
	ZipCode       string `gorm:"type:varchar(20)" json:"zip_code"`
	Country       string `gorm:"type:varchar(100);default:'USA'" json:"country"`
	Active        bool   `gorm:"default:true" json:"active"`
	Notes         string `gorm:"type:text" json:"notes"`
}

// DefaultCountry is stored when a client is created without one
const DefaultCountry = "USA"
