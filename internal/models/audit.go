package models

import "time"

// Audit logging
type AuditLog struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   // who made the change
	FranchiseID uint   `gorm:"index"`
	EntityType  string // ex: "Product", "Quote", "Invoice", "Customer"
	EntityID    uint
	Action      string // create, update, delete
	Field       string // optional
	OldValue    string // optional
	NewValue    string // optional
	CreatedAt   time.Time
}
