package models

import "time"

// Customer entity
type Customer struct {
	ID          uint      `gorm:"primaryKey"`
	FranchiseID uint      `gorm:"not null;index:idx_customer_code,priority:1"` // tenant scope
	Franchise   Franchise `gorm:"foreignKey:FranchiseID"`
	// Short human-readable code shown on documents (ex: CUST-00042).
	// Uniqueness is composite (FranchiseID, Code) via the shared index.
	Code      string `gorm:"size:40;index:idx_customer_code,unique,priority:2"`
	Name      string `gorm:"not null;index"`
	Phone     string `gorm:"not null;index"`
	WhatsApp  string
	Email     string
	Address   string
	City      string
	State     string
	Pincode   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
