package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/store"
)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return New(mem, nil), mem
}

func seedProduct(t *testing.T, mem *store.Memory, name string, priceCents int64, stock int) uint {
	t.Helper()
	p := &models.Product{Name: name, PriceCents: priceCents, Stock: stock}
	require.NoError(t, mem.CreateProduct(p))
	return p.ID
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc, mem := newTestService(t)
	id := seedProduct(t, mem, "mug", 950, 10)

	_, err := svc.AddItem("u1", id, 2)
	require.NoError(t, err)
	line, err := svc.AddItem("u1", id, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)

	lines, err := mem.ListLines("u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	svc, mem := newTestService(t)
	id := seedProduct(t, mem, "mug", 950, 10)

	_, err := svc.AddItem("u1", id, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem("u1", 999, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddItemAdvisoryStockCheck(t *testing.T) {
	svc, mem := newTestService(t)
	id := seedProduct(t, mem, "mug", 950, 4)

	_, err := svc.AddItem("u1", id, 3)
	require.NoError(t, err)

	// 3 in cart + 2 more would exceed the 4 available.
	_, err = svc.AddItem("u1", id, 2)
	var insufficient *store.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 4, insufficient.Available)

	// The advisory failure did not touch stock.
	stock, err := mem.StockOf(id)
	require.NoError(t, err)
	assert.Equal(t, 4, stock)
}

func TestSetQuantity(t *testing.T) {
	svc, mem := newTestService(t)
	id := seedProduct(t, mem, "mug", 950, 10)

	added, err := svc.AddItem("u1", id, 2)
	require.NoError(t, err)

	line, removed, err := svc.SetQuantity("u1", added.ID, 7)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 7, line.Quantity)

	// Quantity <= 0 deletes the line.
	_, removed, err = svc.SetQuantity("u1", added.ID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	lines, err := mem.ListLines("u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSetQuantityHidesOtherUsersLines(t *testing.T) {
	svc, mem := newTestService(t)
	id := seedProduct(t, mem, "mug", 950, 10)

	added, err := svc.AddItem("u1", id, 2)
	require.NoError(t, err)

	_, _, err = svc.SetQuantity("u2", added.ID, 5)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIncrementDecrement(t *testing.T) {
	svc, mem := newTestService(t)
	id := seedProduct(t, mem, "mug", 950, 10)

	added, err := svc.AddItem("u1", id, 1)
	require.NoError(t, err)

	line, err := svc.Increment("u1", added.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	line, removed, err := svc.Decrement("u1", added.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, line.Quantity)

	// Decrementing a line at quantity 1 deletes it.
	_, removed, err = svc.Decrement("u1", added.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	lines, err := mem.ListLines("u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveAndClear(t *testing.T) {
	svc, mem := newTestService(t)
	mug := seedProduct(t, mem, "mug", 950, 10)
	pen := seedProduct(t, mem, "pen", 200, 10)

	added, err := svc.AddItem("u1", mug, 1)
	require.NoError(t, err)
	_, err = svc.AddItem("u1", pen, 2)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem("u1", added.ID))
	lines, err := mem.ListLines("u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	require.NoError(t, svc.ClearCart("u1"))
	lines, err = mem.ListLines("u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartTotalIsLiveReprice(t *testing.T) {
	svc, mem := newTestService(t)
	id := seedProduct(t, mem, "mug", 1000, 10)

	_, err := svc.AddItem("u1", id, 3)
	require.NoError(t, err)

	lines, total, err := svc.Cart("u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(3000), total)
	assert.Equal(t, "mug", lines[0].ProductName)

	// Cart totals follow catalog price changes (order totals do not).
	require.NoError(t, mem.UpdateProduct(&models.Product{ID: id, Name: "mug", PriceCents: 1500}))
	_, total, err = svc.Cart("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(4500), total)
}
