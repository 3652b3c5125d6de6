package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/storefront-api/models"
)

// Walks one order through its whole life: browse, add to cart, check
// out, confirm, cancel.
func TestStorefrontRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	poster := &models.Product{Name: "poster", PriceCents: 1250, Stock: 10}
	require.NoError(t, svc.CreateProduct(poster))

	_, err := svc.AddItem("alice", poster.ID, 4)
	require.NoError(t, err)

	lines, total, err := svc.Cart("alice")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(5000), total)

	order, err := svc.Checkout("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), order.TotalCents)

	product, err := svc.Product(poster.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, product.Stock)

	lines, _, err = svc.Cart("alice")
	require.NoError(t, err)
	assert.Empty(t, lines)

	confirmed, err := svc.ConfirmOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)

	revenue, err := svc.TotalRevenueCents()
	require.NoError(t, err)
	assert.Equal(t, int64(5000), revenue)

	cancelled, err := svc.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	product, err = svc.Product(poster.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)

	revenue, err = svc.TotalRevenueCents()
	require.NoError(t, err)
	assert.Equal(t, int64(0), revenue)
}
