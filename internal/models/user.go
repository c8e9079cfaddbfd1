package models

import "time"

// User & auth related models
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"unique;not null;index"`
	Password  string `gorm:"not null"` // bcrypt hash
	Name      string `gorm:"index"`
	Phone     string
	RoleID    uint // FK to Role
	Role      Role `gorm:"foreignKey:RoleID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"` // admin, manager, staff
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Notification struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null"`
	User        User `gorm:"foreignKey:UserID"`
	Type        string // ex: "dashboard", "whatsapp", "email"
	Title       string
	Message     string
	Read        bool
	SentAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
