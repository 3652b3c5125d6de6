package models

import (
	"errors"
	"strings"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, stock reserved
	OrderStatusConfirmed OrderStatus = "confirmed" // accepted by the seller
	OrderStatusShipped   OrderStatus = "shipped"   // out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // terminal
	OrderStatusCancelled OrderStatus = "cancelled" // terminal, stock released
)

// statusRank orders the forward progression pending -> confirmed -> shipped
// -> delivered. Cancelled sits outside the progression and is handled
// explicitly in CanTransition.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// ParseOrderStatus maps a request string to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status: " + s)
	}
}

func (s OrderStatus) Valid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether an order in status s may move to status to.
// Terminal states are frozen, cancellation is reachable only from pending or
// confirmed, and the remaining statuses may only move forward (skipping ahead
// is allowed, going back is not).
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.Terminal() || !to.Valid() || s == to {
		return false
	}
	if to == OrderStatusCancelled {
		return s == OrderStatusPending || s == OrderStatusConfirmed
	}
	return statusRank[to] > statusRank[s]
}
