package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/store"
)

func TestCheckoutSuccess(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	pen := seedProduct(t, mem, "pen", 200, 5)

	_, err := svc.AddItem("u1", mug, 4)
	require.NoError(t, err)
	_, err = svc.AddItem("u1", pen, 2)
	require.NoError(t, err)

	order, err := svc.Checkout("u1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "u1", order.UserID)
	assert.NotEmpty(t, order.Reference)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(4*1000+2*200), order.TotalCents)

	// Stock reserved, cart emptied.
	stock, err := mem.StockOf(mug)
	require.NoError(t, err)
	assert.Equal(t, 6, stock)
	stock, err = mem.StockOf(pen)
	require.NoError(t, err)
	assert.Equal(t, 3, stock)

	lines, err := mem.ListLines("u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Checkout("u1")
	assert.ErrorIs(t, err, store.ErrEmptyCart)
}

func TestCheckoutRollsBackOnShortLine(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)
	pen := seedProduct(t, mem, "pen", 200, 5)

	_, err := svc.AddItem("u1", mug, 4)
	require.NoError(t, err)
	_, err = svc.AddItem("u1", pen, 3)
	require.NoError(t, err)

	// Another checkout drains the pens between add-to-cart and checkout.
	require.NoError(t, mem.Reserve(pen, 4))

	_, err = svc.Checkout("u1")
	var insufficient *store.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, pen, insufficient.ProductID)

	// The mug reservation was rolled back and the cart is intact.
	stock, err := mem.StockOf(mug)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)

	lines, err := mem.ListLines("u1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	orders, err := mem.ListOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutSnapshotsPrices(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 1000, 10)

	_, err := svc.AddItem("u1", mug, 2)
	require.NoError(t, err)
	order, err := svc.Checkout("u1")
	require.NoError(t, err)

	// A later catalog price change must not move the order total.
	require.NoError(t, mem.UpdateProduct(&models.Product{ID: mug, Name: "mug", PriceCents: 9999}))

	got, err := svc.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.TotalCents)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(1000), got.Items[0].UnitPriceCents)
	assert.Equal(t, got.TotalCents, got.Items[0].SubtotalCents())
}

func TestConcurrentCheckoutsNoOversell(t *testing.T) {
	svc, mem := newTestService(t)
	const stock = 10
	limited := seedProduct(t, mem, "limited", 5000, stock)

	// 25 users each want 2 units; only 5 checkouts can succeed.
	const users = 25
	userIDs := make([]string, users)
	for i := range userIDs {
		userIDs[i] = fmt.Sprintf("user-%d", i)
		_, err := svc.AddItem(userIDs[i], limited, 2)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded, outOfStock int
	for _, uid := range userIDs {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			_, err := svc.Checkout(uid)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			default:
				var insufficient *store.InsufficientStockError
				if errors.As(err, &insufficient) {
					outOfStock++
				}
			}
		}(uid)
	}
	wg.Wait()

	assert.Equal(t, stock/2, succeeded)
	assert.Equal(t, users-stock/2, outOfStock)

	remaining, err := mem.StockOf(limited)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.GreaterOrEqual(t, remaining, 0)
}
