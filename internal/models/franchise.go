package models

import "time"

// Franchise is the tenant unit: every customer, product, quote and invoice
// row is scoped to exactly one franchise. It also carries the company
// settings used for document branding (name, contact block, colors, terms).
type Franchise struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null;index"`
	Code           string `gorm:"size:20;not null;uniqueIndex"` // short slug, ex: HQ, MUM01
	OwnerUserID    uint   `gorm:"index"`                        // FK to User
	Owner          User   `gorm:"foreignKey:OwnerUserID"`
	Tagline        string
	Phone          string
	Email          string
	Website        string
	Address        string
	City           string
	State          string
	Pincode        string
	GSTNumber      string `gorm:"index"`
	LogoURL        string // URL or path of the logo asset
	TermsText      string // terms & conditions printed on quote/invoice footers
	PrimaryColor   string `gorm:"not null;default:'#1b5e20'"`
	SecondaryColor string `gorm:"not null;default:'#4caf50'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UserFranchise struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null"`
	FranchiseID uint `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
