package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

type Reservation struct {
	ID             int64
	CustomerID     int64
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	PartySize      int
	SpecialRequest string
	Status         ReservationStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReservationTransitionAllowed mirrors OrderTransitionAllowed for the
// reservation workflow: staff may set any status except resurrecting a
// completed reservation into cancelled; customers may only cancel their
// own non-terminal reservation. Ownership is checked by the caller.
func ReservationTransitionAllowed(actor Actor, from, to ReservationStatus) bool {
	if from == ReservationCompleted && to == ReservationCancelled {
		return false
	}
	switch actor.Role {
	case RoleAdmin, RoleManager:
		return true
	case RoleCustomer:
		return to == ReservationCancelled && !from.Terminal()
	}
	return false
}
