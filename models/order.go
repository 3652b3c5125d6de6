package models

import "time"

// Order is immutable after creation except for Status. TotalCents is computed
// once at checkout from the item price snapshots and never recomputed.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Reference  string      `gorm:"uniqueIndex" json:"reference"`
	UserID     string      `gorm:"not null;index" json:"user_id"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalCents int64       `json:"total_cents"`
	Status     OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem carries the unit price as it was at checkout. Later catalog price
// changes do not touch it, which keeps the order total a fixed historical fact.
type OrderItem struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	OrderID        uint  `gorm:"index" json:"order_id"`
	ProductID      uint  `json:"product_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
}

func (i OrderItem) SubtotalCents() int64 {
	return int64(i.Quantity) * i.UnitPriceCents
}
