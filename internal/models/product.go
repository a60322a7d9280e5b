package models

import "time"

// ProductBatch is one manufacturing lot of a registered GTIN.
// The batch identifier is the unit a QR code encodes.
type ProductBatch struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Batch   string    `gorm:"uniqueIndex;not null" json:"batch"`
	GTIN    string    `gorm:"column:gtin;index;not null" json:"gtin"`
	MfgDate time.Time `gorm:"column:mfg_date;not null" json:"mfgDate"`
	ExpDate time.Time `gorm:"column:exp_date;not null" json:"expDate"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for ProductBatch model
func (ProductBatch) TableName() string {
	return "products"
}
