package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "Confirmed", "SHIPPED", "delivered", "cancelled"} {
		got, err := ParseOrderStatus(s)
		require.NoError(t, err)
		assert.True(t, got.Valid())
	}

	_, err := ParseOrderStatus("refunded")
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusShipped, true}, // forward skip allowed
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},

		{OrderStatusConfirmed, OrderStatusPending, false}, // no going back
		{OrderStatusShipped, OrderStatusConfirmed, false},
		{OrderStatusShipped, OrderStatusCancelled, false}, // too late to cancel
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusShipped, false}, // terminal
		{OrderStatusCancelled, OrderStatusPending, false}, // terminal
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusPending, OrderStatus("refunded"), false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusConfirmed.Terminal())
	assert.False(t, OrderStatusShipped.Terminal())
}
