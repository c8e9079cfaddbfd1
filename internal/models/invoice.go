package models

import "time"

// Invoicing models
type Invoice struct {
	ID          uint          `gorm:"primaryKey"`
	Number      string        `gorm:"size:40;not null;uniqueIndex"` // ex: INV-1812345678
	Status      string        `gorm:"not null"`                     // draft, final, paid, cancelled
	FranchiseID uint          `gorm:"not null;index"`
	CustomerID  uint          `gorm:"not null;index"`
	Customer    Customer      `gorm:"foreignKey:CustomerID"`
	QuoteID     uint          // origin quote when converted, 0 for direct invoices
	Items       []InvoiceItem `gorm:"foreignKey:InvoiceID"`

	BookingType string `gorm:"not null;default:'rental'"`

	// Pricing snapshot, copied from the quote on conversion.
	Subtotal        float64
	DiscountAmount  float64
	CouponDiscount  float64
	TaxAmount       float64
	TotalAmount     float64
	SecurityDeposit float64

	PaidAmount    float64
	PendingAmount float64
	PaymentType   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey"`
	InvoiceID uint    `gorm:"not null;index"`
	ProductID uint    `gorm:"not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
	Total     float64 `gorm:"not null"`
	Deposit   float64
}
