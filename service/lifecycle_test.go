package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/store"
)

func placeOrder(t *testing.T, svc *Service, userID string, productID uint, qty int) *models.Order {
	t.Helper()
	_, err := svc.AddItem(userID, productID, qty)
	require.NoError(t, err)
	order, err := svc.Checkout(userID)
	require.NoError(t, err)
	return order
}

func TestConfirmOrder(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	order := placeOrder(t, svc, "u1", mug, 2)

	confirmed, err := svc.ConfirmOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)

	// Confirmation has no stock effect; the units stay reserved.
	stock, err := mem.StockOf(mug)
	require.NoError(t, err)
	assert.Equal(t, 8, stock)
}

func TestCancelPendingReleasesStock(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	order := placeOrder(t, svc, "u1", mug, 3)

	stock, err := mem.StockOf(mug)
	require.NoError(t, err)
	require.Equal(t, 7, stock)

	cancelled, err := svc.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	stock, err = mem.StockOf(mug)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestCancelShippedFails(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	order := placeOrder(t, svc, "u1", mug, 3)

	_, err := svc.SetOrderStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	_, err = svc.CancelOrder(order.ID)
	var transition *store.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, models.OrderStatusShipped, transition.From)

	// Status and stock untouched.
	got, err := svc.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)
	stock, err := mem.StockOf(mug)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestCancelTwiceFails(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	order := placeOrder(t, svc, "u1", mug, 3)

	_, err := svc.CancelOrder(order.ID)
	require.NoError(t, err)

	// A second cancel must not release stock again.
	_, err = svc.CancelOrder(order.ID)
	var transition *store.InvalidTransitionError
	require.ErrorAs(t, err, &transition)

	stock, err := mem.StockOf(mug)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestSetOrderStatusEnforcesTable(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	order := placeOrder(t, svc, "u1", mug, 1)

	// Forward skip is allowed.
	got, err := svc.SetOrderStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	// Backward is not.
	_, err = svc.SetOrderStatus(order.ID, models.OrderStatusConfirmed)
	var transition *store.InvalidTransitionError
	assert.ErrorAs(t, err, &transition)

	// Terminal states are frozen.
	_, err = svc.SetOrderStatus(order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	_, err = svc.SetOrderStatus(order.ID, models.OrderStatusShipped)
	assert.ErrorAs(t, err, &transition)
}

func TestSetOrderStatusRoutesCancellation(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	order := placeOrder(t, svc, "u1", mug, 2)

	// Setting status to cancelled must go through the cancel path and
	// release the reserved stock.
	got, err := svc.SetOrderStatus(order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)

	stock, err := mem.StockOf(mug)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestOrderQueries(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	first := placeOrder(t, svc, "u1", mug, 1)
	second := placeOrder(t, svc, "u2", mug, 2)

	got, err := svc.Order(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = svc.Order(999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	mine, err := svc.OrdersByUser("u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	theirs, err := svc.OrdersByUser("u2")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, second.ID, theirs[0].ID)

	all, err := svc.AllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderEventsEmitted(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)

	var events []OrderEvent
	svc.OnOrderEvent(func(evt OrderEvent) { events = append(events, evt) })

	order := placeOrder(t, svc, "u1", mug, 1)
	_, err := svc.ConfirmOrder(order.ID)
	require.NoError(t, err)
	_, err = svc.CancelOrder(order.ID)
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, EventOrderPlaced, events[0].Type)
	assert.Equal(t, EventOrderStatusChanged, events[1].Type)
	assert.Equal(t, models.OrderStatusConfirmed, events[1].Order.Status)
	assert.Equal(t, models.OrderStatusCancelled, events[2].Order.Status)
}
