package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/store"
)

// Checkout converts the user's cart into a pending order. Either every line
// is reserved, priced and persisted, or nothing changes: a reservation that
// cannot be followed through is released synchronously before the error is
// returned.
func (s *Service) Checkout(userID string) (*models.Order, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	lines, err := s.store.ListLines(userID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, store.ErrEmptyCart
	}

	// Reserve in ascending product id so two checkouts sharing products take
	// the rows in the same order and cannot deadlock.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	reserved := make([]models.CartItem, 0, len(lines))
	rollback := func() {
		for _, r := range reserved {
			if err := s.store.Release(r.ProductID, r.Quantity); err != nil {
				s.log.Error("failed to release reservation during checkout rollback",
					zap.Uint("product_id", r.ProductID),
					zap.Int("quantity", r.Quantity),
					zap.Error(err))
			}
		}
	}

	items := make([]models.OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		if err := s.store.Reserve(line.ProductID, line.Quantity); err != nil {
			rollback()
			return nil, err
		}
		reserved = append(reserved, line)

		product, err := s.store.GetProduct(line.ProductID)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("snapshot price for product %d: %w", line.ProductID, err)
		}
		item := models.OrderItem{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
		}
		items = append(items, item)
		total += item.SubtotalCents()
	}

	order := &models.Order{
		Reference:  newOrderRef(),
		UserID:     userID,
		Items:      items,
		TotalCents: total,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := s.store.PlaceOrder(order); err != nil {
		// A reservation must never outlive a failed checkout.
		rollback()
		return nil, fmt.Errorf("persist order: %w", err)
	}

	s.log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int64("total_cents", total),
		zap.Int("items", len(items)))
	s.emit(OrderEvent{Type: EventOrderPlaced, Order: *order})
	return order, nil
}

func newOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
