package store

import (
	"errors"
	"fmt"

	"github.com/storefront-labs/storefront-api/models"
)

var (
	// ErrNotFound covers missing products, cart lines and orders.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart is returned by checkout when the user has no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrStockInconsistency signals a release that would exceed the recorded
	// reservations for a product. It indicates a bookkeeping bug, not a user
	// error, and is logged as a defect before being returned.
	ErrStockInconsistency = errors.New("stock bookkeeping inconsistency")
)

// InsufficientStockError is returned when a reservation (or an advisory cart
// check) asks for more units than are available.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError is returned for an illegal order status change.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}
