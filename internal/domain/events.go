package domain

import "time"

// Status-change events published to the dinehall_events topic exchange
// after the owning transaction commits. Consumed by kitchen displays and
// ops tooling; delivery is best-effort.

type OrderStatusChanged struct {
	OrderID   int64       `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	ChangedBy Role        `json:"changed_by"`
	Timestamp time.Time   `json:"timestamp"`
}

type ReservationStatusChanged struct {
	ReservationID int64             `json:"reservation_id"`
	OldStatus     ReservationStatus `json:"old_status"`
	NewStatus     ReservationStatus `json:"new_status"`
	ChangedBy     Role              `json:"changed_by"`
	Timestamp     time.Time         `json:"timestamp"`
}
