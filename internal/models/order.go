package models

import "time"

// Order records a completed (simulated) checkout.
type Order struct {
	ID         string      `gorm:"primaryKey;size:64"` // UUID
	FirstName  string      `gorm:"size:64"`
	LastName   string      `gorm:"size:64"`
	Email      string      `gorm:"size:128"`
	Address    string      `gorm:"size:255"`
	City       string      `gorm:"size:64"`
	ZipCode    string      `gorm:"size:16"`
	TotalCents int64       `gorm:"not null"`
	ItemCount  int         `gorm:"not null"`
	Items      []OrderItem `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
}

// OrderItem is one cart line frozen at checkout time.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey"`
	OrderID    string `gorm:"index;size:64;not null"`
	ProductID  int    `gorm:"not null"`
	Title      string `gorm:"size:255"`
	PriceCents int64  `gorm:"not null"`
	Quantity   int    `gorm:"not null"`
}
