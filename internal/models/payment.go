package models

import "time"

// Payment tied to invoices
type Payment struct {
	ID        uint      `gorm:"primaryKey"`
	InvoiceID uint      `gorm:"not null;index"` // FK to Invoice
	Date      time.Time `gorm:"not null"`
	Amount    float64   `gorm:"not null"`
	Method    string    `gorm:"not null"` // ex: upi, card, cash, bank_transfer
	Type      string    `gorm:"not null"` // ex: advance, settlement, deposit_refund
	Reference string    // gateway / transaction reference
	CreatedAt time.Time
	UpdatedAt time.Time
}
