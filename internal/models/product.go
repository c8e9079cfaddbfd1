package models

import (
	"time"

	"gorm.io/gorm"
)

// Product domain models
type ProductCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;unique"` // ex: safa, garland, jewellery
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID          uint      `gorm:"primaryKey"`
	FranchiseID uint      `gorm:"not null;index:idx_product_code,priority:1"`
	Franchise   Franchise `gorm:"foreignKey:FranchiseID"`
	// Product code unique per franchise; also the payload of the printed barcode.
	Code            string          `gorm:"size:40;not null;index:idx_product_code,unique,priority:2"`
	Name            string          `gorm:"not null"`
	CategoryID      uint            // FK to ProductCategory
	Category        ProductCategory `gorm:"foreignKey:CategoryID"`
	RentalPrice     float64         `gorm:"not null"` // per unit per event
	SalePrice       float64         // 0 when the item is rental-only
	SecurityDeposit float64         // per unit, rentals only
	StockQuantity   int             `gorm:"not null;default:0"`
	Description     string
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
