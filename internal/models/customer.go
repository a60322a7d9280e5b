package models

import (
	"time"

	"gorm.io/datatypes"
)

// CustomerScan is one verification-page submission. The batch field is
// free text: it is not constrained to registered batches unless scan
// validation is enabled in the configuration.
type CustomerScan struct {
	ID       uint   `gorm:"primaryKey;column:customer_id" json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Batch    string `gorm:"index" json:"batch"`

	// Meta captures request metadata (user agent, referer) as submitted.
	Meta datatypes.JSON `json:"meta,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for CustomerScan model
func (CustomerScan) TableName() string {
	return "customers"
}
