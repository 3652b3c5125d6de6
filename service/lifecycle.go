package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/store"
)

// ConfirmOrder moves a pending order to confirmed.
func (s *Service) ConfirmOrder(orderID uint) (*models.Order, error) {
	return s.SetOrderStatus(orderID, models.OrderStatusConfirmed)
}

// SetOrderStatus applies an operator status change, enforcing the transition
// table. Cancellation is routed through CancelOrder so the reserved stock is
// returned.
func (s *Service) SetOrderStatus(orderID uint, to models.OrderStatus) (*models.Order, error) {
	if to == models.OrderStatusCancelled {
		return s.CancelOrder(orderID)
	}
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(to) {
		return nil, &store.InvalidTransitionError{From: order.Status, To: to}
	}
	if err := s.store.UpdateOrderStatus(orderID, to); err != nil {
		return nil, err
	}
	order.Status = to
	s.log.Info("order status changed",
		zap.Uint("order_id", orderID),
		zap.String("status", string(to)))
	s.emit(OrderEvent{Type: EventOrderStatusChanged, Order: *order})
	return order, nil
}

// CancelOrder cancels a pending or confirmed order and returns every reserved
// unit to the ledger. If anything fails mid-way, the releases already applied
// are re-reserved so status and inventory stay exactly as they were.
func (s *Service) CancelOrder(orderID uint) (*models.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(models.OrderStatusCancelled) {
		return nil, &store.InvalidTransitionError{From: order.Status, To: models.OrderStatusCancelled}
	}

	released := make([]models.OrderItem, 0, len(order.Items))
	reapply := func() {
		for _, it := range released {
			if err := s.store.Reserve(it.ProductID, it.Quantity); err != nil {
				s.log.Error("failed to re-reserve stock after aborted cancellation",
					zap.Uint("order_id", orderID),
					zap.Uint("product_id", it.ProductID),
					zap.Int("quantity", it.Quantity),
					zap.Error(err))
			}
		}
	}

	for _, it := range order.Items {
		if err := s.store.Release(it.ProductID, it.Quantity); err != nil {
			reapply()
			s.log.Error("stock release failed during cancellation",
				zap.Uint("order_id", orderID),
				zap.Uint("product_id", it.ProductID),
				zap.Int("quantity", it.Quantity),
				zap.Error(err))
			return nil, fmt.Errorf("cancel order %d: %w", orderID, err)
		}
		released = append(released, it)
	}

	if err := s.store.UpdateOrderStatus(orderID, models.OrderStatusCancelled); err != nil {
		reapply()
		return nil, fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	order.Status = models.OrderStatusCancelled
	s.log.Info("order cancelled", zap.Uint("order_id", orderID))
	s.emit(OrderEvent{Type: EventOrderStatusChanged, Order: *order})
	return order, nil
}

// Order returns one order with its items.
func (s *Service) Order(orderID uint) (*models.Order, error) {
	return s.store.GetOrder(orderID)
}

// OrdersByUser lists a user's orders, newest first.
func (s *Service) OrdersByUser(userID string) ([]models.Order, error) {
	return s.store.ListOrdersByUser(userID)
}

// AllOrders lists every order, newest first.
func (s *Service) AllOrders() ([]models.Order, error) {
	return s.store.ListOrders()
}
