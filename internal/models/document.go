package models

import "time"

// Document records a generated or uploaded file attached to an entity,
// typically the PDF produced for a quote or invoice.
type Document struct {
	ID          uint   `gorm:"primaryKey"`
	FranchiseID uint   `gorm:"index"`
	OwnerType   string // ex: "Invoice", "Quote", "Customer"
	OwnerID     uint
	Type        string // ex: "pdf", "xlsx", "barcode"
	Name        string // file name, ex: QT-1812345678.pdf
	MimeType    string
	SizeBytes   int64
	GeneratedBy uint // UserID of the requester
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
