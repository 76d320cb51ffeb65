package order

import (
	"context"

	"dinehall/internal/domain"
)

// Repository owns the orders, order_items and order_status_log tables.
// The *Tx methods run their callback against a row-locked order so that
// concurrent writers serialize on the order and each one evaluates its
// move against the committed state it observes.
type Repository interface {
	// CreateTx inserts the order header, all its items and the initial
	// status-log row in one transaction, filling in o.ID and timestamps.
	CreateTx(ctx context.Context, o *domain.Order) error

	// TransitionTx locks the order, calls decide with the current state,
	// and persists the returned status together with its paired timestamp
	// and audit-log updates. Returning the current status from decide is
	// an idempotent no-op: nothing is written.
	TransitionTx(ctx context.Context, orderID int64, changedBy string,
		decide func(current domain.Order) (domain.OrderStatus, error)) (domain.Order, error)

	// MutateItemsTx locks the order (with its items loaded), calls apply,
	// and persists the resulting item set and totals atomically. Items
	// with ID 0 are inserted, existing IDs are updated, and IDs dropped
	// from o.Items are deleted.
	MutateItemsTx(ctx context.Context, orderID int64,
		apply func(o *domain.Order) error) (domain.Order, error)

	SetPaymentStatus(ctx context.Context, orderID int64, status domain.PaymentStatus) error

	Get(ctx context.Context, orderID int64) (domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	// KitchenQueue returns pending, confirmed and preparing orders in the
	// order the kitchen works them: by status stage, then oldest first.
	KitchenQueue(ctx context.Context) ([]domain.Order, error)
}
