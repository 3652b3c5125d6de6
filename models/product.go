package models

import (
	"time"

	"gorm.io/gorm"
)

// Product belongs to the catalog. The order core reads PriceCents and is the
// only writer of Stock/Reserved; name, description and price are managed by
// the catalog endpoints.
type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	// Unit price in minor currency units. Never negative.
	PriceCents int64 `gorm:"not null" json:"price_cents"`
	// Stock is the quantity still available for reservation.
	Stock int `gorm:"not null;default:0" json:"stock"`
	// Reserved counts units held by orders in non-cancelled status. Stock and
	// Reserved move together in the ledger so a release can never hand back
	// more than was taken.
	Reserved  int            `gorm:"not null;default:0" json:"reserved"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
