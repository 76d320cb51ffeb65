package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "pickup"
	DeliveryDelivery DeliveryType = "delivery"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no forward transition is defined from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Order struct {
	ID            int64
	CustomerID    *int64 // nil for legacy guest orders
	Status        OrderStatus
	PaymentStatus PaymentStatus
	TotalAmount   float64
	TaxAmount     float64
	DeliveryFee   float64
	DeliveryType  DeliveryType
	PaymentMethod string
	Address       string
	Notes         string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time // set only while status is delivered
}

type OrderItem struct {
	ID                  int64
	OrderID             int64
	MenuItemID          int64
	Name                string
	Quantity            int
	SpecialInstructions string
	UnitPrice           float64 // captured at commit time, never recomputed
}

// Subtotal is the sum of line prices before tax and delivery fee.
func (o Order) Subtotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return RoundCents(sum)
}

// kitchenOrderMoves is the forward chain the kitchen dashboard drives,
// plus cancellation while the order has not started cooking.
var kitchenOrderMoves = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady},
}

// OrderTransitionAllowed reports whether actor may move an order from one
// status to another. Same-status moves are handled by the caller as
// idempotent no-ops before this check.
func OrderTransitionAllowed(actor Actor, from, to OrderStatus) bool {
	switch actor.Role {
	case RoleAdmin, RoleManager:
		// operational override: any status is reachable
		return true
	case RoleKitchen:
		for _, next := range kitchenOrderMoves[from] {
			if next == to {
				return true
			}
		}
		return false
	case RoleCustomer:
		return from == OrderPending && to == OrderCancelled
	}
	return false
}
