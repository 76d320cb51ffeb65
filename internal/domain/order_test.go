package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitionAllowed(t *testing.T) {
	kitchen := Actor{Role: RoleKitchen, ID: 7}
	customer := Actor{Role: RoleCustomer, ID: 42}
	admin := Actor{Role: RoleAdmin, ID: 1}

	tests := []struct {
		name  string
		actor Actor
		from  OrderStatus
		to    OrderStatus
		want  bool
	}{
		{"kitchen confirms pending", kitchen, OrderPending, OrderConfirmed, true},
		{"kitchen starts preparing", kitchen, OrderConfirmed, OrderPreparing, true},
		{"kitchen marks ready", kitchen, OrderPreparing, OrderReady, true},
		{"kitchen cancels pending", kitchen, OrderPending, OrderCancelled, true},
		{"kitchen cancels confirmed", kitchen, OrderConfirmed, OrderCancelled, true},
		{"kitchen cannot cancel preparing", kitchen, OrderPreparing, OrderCancelled, false},
		{"kitchen cannot skip ahead", kitchen, OrderPending, OrderReady, false},
		{"kitchen cannot deliver", kitchen, OrderReady, OrderDelivered, false},
		{"kitchen cannot move backward", kitchen, OrderReady, OrderPending, false},
		{"customer cancels pending", customer, OrderPending, OrderCancelled, true},
		{"customer cannot cancel confirmed", customer, OrderConfirmed, OrderCancelled, false},
		{"customer cannot confirm", customer, OrderPending, OrderConfirmed, false},
		{"customer cannot mark ready", customer, OrderPending, OrderReady, false},
		{"admin delivers", admin, OrderReady, OrderDelivered, true},
		{"admin overrides backward", admin, OrderReady, OrderPending, true},
		{"admin revives cancelled", admin, OrderCancelled, OrderPending, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderTransitionAllowed(tt.actor, tt.from, tt.to))
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderReady.Terminal())
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 3.28, RoundCents(3.2776))
	assert.Equal(t, 40.97, RoundCents(40.97))
	assert.Equal(t, 0.0, RoundCents(0))
	assert.Equal(t, -3.28, RoundCents(-3.2776))
	assert.Equal(t, 0.1, RoundCents(0.1))
}

func TestOrderSubtotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{UnitPrice: 8.99, Quantity: 2},
		{UnitPrice: 22.99, Quantity: 1},
	}}
	assert.Equal(t, 40.97, o.Subtotal())
}
