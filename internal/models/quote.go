package models

import "time"

// Quote / booking estimate models.
// A quote snapshots its pricing at creation time; the PDF pipeline renders
// the stored totals and never recomputes them.
type Quote struct {
	ID          uint        `gorm:"primaryKey"`
	Number      string      `gorm:"size:40;not null;uniqueIndex"` // ex: QT-1812345678
	Status      string      `gorm:"not null"`                     // draft, sent, accepted, rejected, converted
	FranchiseID uint        `gorm:"not null;index"`
	CustomerID  uint        `gorm:"not null;index"`
	Customer    Customer    `gorm:"foreignKey:CustomerID"`
	Items       []QuoteItem `gorm:"foreignKey:QuoteID"`

	// Booking nature: rental or sale.
	BookingType string `gorm:"not null;default:'rental'"`

	// Event block
	EventType    string // wedding, engagement, reception...
	EventDate    *time.Time
	EventTime    string
	DeliveryDate *time.Time
	DeliveryTime string
	ReturnDate   *time.Time
	ReturnTime   string
	VenueName    string
	VenueAddress string

	// Optional secondary contacts printed on wedding documents.
	GroomName     string
	GroomWhatsApp string
	GroomAddress  string
	BrideName     string
	BrideWhatsApp string
	BrideAddress  string

	// Pricing snapshot
	Subtotal        float64
	DiscountAmount  float64
	CouponCode      string
	CouponDiscount  float64
	TaxAmount       float64
	TotalAmount     float64
	SecurityDeposit float64

	PaymentType string // full_payment, advance, on_delivery
	Notes       string

	SalesStaffID         uint // user who closed the sale
	ConvertedToInvoiceID uint // set once the quote becomes an invoice

	CreatedAt time.Time
	UpdatedAt time.Time
}

type QuoteItem struct {
	ID        uint    `gorm:"primaryKey"`
	QuoteID   uint    `gorm:"not null;index"`
	ProductID uint    `gorm:"not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"` // snapshot of rental/sale price at quote time
	Total     float64 `gorm:"not null"` // Quantity * UnitPrice
	Deposit   float64 // per-unit security deposit snapshot
}
