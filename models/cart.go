package models

import "time"

// CartItem is one pending line in a user's cart. The (UserID, ProductID)
// unique index is what makes re-adding a product merge quantities instead of
// creating a second line.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
