package reservation

import (
	"context"

	"dinehall/internal/domain"
)

type Repository interface {
	// Create persists a pending reservation, refusing a second active
	// reservation for the same (customer, date, time) slot.
	Create(ctx context.Context, r *domain.Reservation) error

	// HasActiveSlot reports whether the customer already holds a
	// non-cancelled reservation for the slot.
	HasActiveSlot(ctx context.Context, customerID int64, date, timeOfDay string) (bool, error)

	// TransitionTx locks the reservation, calls decide with the current
	// state, and persists the returned status with an updated_at bump in
	// the same transaction. Returning the current status is a no-op.
	TransitionTx(ctx context.Context, id int64,
		decide func(current domain.Reservation) (domain.ReservationStatus, error)) (domain.Reservation, error)

	Get(ctx context.Context, id int64) (domain.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error)
}
