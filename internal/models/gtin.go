package models

import "time"

// GTINRegistration maps a GTIN to a product identity.
// One row per trade item; batches reference it by GTIN.
type GTINRegistration struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	GTIN        string `gorm:"column:gtin;uniqueIndex;not null" json:"gtin"`
	ProductName string `gorm:"not null" json:"productName"`
	ProductType string `gorm:"index;not null" json:"productType"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GTINRegistration model
func (GTINRegistration) TableName() string {
	return "gtin_registration"
}
