package reservation

import (
	"context"
	"time"

	"dinehall/internal/common/logger"
	"dinehall/internal/domain"
	"dinehall/internal/events"
)

type Service struct {
	repo   Repository
	events events.Publisher
	log    *logger.Logger
}

func NewService(repo Repository, pub events.Publisher, log *logger.Logger) *Service {
	return &Service{repo: repo, events: pub, log: log}
}

// Create validates and persists a pending reservation. Conflicts are
// checked before the write; the partial unique index catches the race
// where two requests pass the check concurrently.
func (s *Service) Create(ctx context.Context, customerID int64, date, timeOfDay string,
	partySize int, specialRequest string) (domain.Reservation, error) {

	if customerID < 1 {
		return domain.Reservation{}, &domain.ValidationError{Field: "customer_id", Reason: "required"}
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.Reservation{}, &domain.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return domain.Reservation{}, &domain.ValidationError{Field: "date", Reason: "must not be in the past"}
	}
	if timeOfDay == "" {
		return domain.Reservation{}, &domain.ValidationError{Field: "time", Reason: "required"}
	}
	if partySize < 1 {
		return domain.Reservation{}, &domain.ValidationError{Field: "party_size", Reason: "must be at least 1"}
	}

	taken, err := s.repo.HasActiveSlot(ctx, customerID, date, timeOfDay)
	if err != nil {
		return domain.Reservation{}, err
	}
	if taken {
		return domain.Reservation{}, &domain.ConflictError{Reason: "an active reservation already exists for this date and time"}
	}

	r := domain.Reservation{
		CustomerID:     customerID,
		Date:           date,
		Time:           timeOfDay,
		PartySize:      partySize,
		SpecialRequest: specialRequest,
		Status:         domain.ReservationPending,
	}
	if err := s.repo.Create(ctx, &r); err != nil {
		return domain.Reservation{}, err
	}

	s.publish(ctx, r.ID, "", domain.ReservationPending, domain.RoleCustomer)
	s.log.Info("reservation_created", map[string]any{
		"reservation_id": r.ID, "customer_id": customerID, "date": date, "time": timeOfDay,
	})
	return r, nil
}

// Transition moves a reservation through its lifecycle. Staff may set any
// status except cancelling a completed reservation; customers may only
// cancel their own non-terminal one. Repeating the current status is a
// no-op success.
func (s *Service) Transition(ctx context.Context, id int64, actor domain.Actor,
	target domain.ReservationStatus) (domain.Reservation, error) {

	if !target.Valid() {
		return domain.Reservation{}, &domain.ValidationError{Field: "status", Reason: "unknown reservation status"}
	}

	var from domain.ReservationStatus
	updated, err := s.repo.TransitionTx(ctx, id, func(cur domain.Reservation) (domain.ReservationStatus, error) {
		from = cur.Status
		if actor.Role == domain.RoleCustomer && cur.CustomerID != actor.ID {
			return "", domain.ErrNotFound
		}
		if target == cur.Status {
			return target, nil
		}
		if !domain.ReservationTransitionAllowed(actor, cur.Status, target) {
			return "", &domain.ForbiddenTransitionError{Role: actor.Role, From: string(cur.Status), To: string(target)}
		}
		return target, nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	if from != updated.Status {
		s.publish(ctx, id, from, updated.Status, actor.Role)
		s.log.Info("reservation_status_changed", map[string]any{
			"reservation_id": id, "from": from, "to": updated.Status, "by": actor.Role,
		})
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &domain.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return s.repo.ListByDate(ctx, date)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown reservation status"}
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) publish(ctx context.Context, id int64, from, to domain.ReservationStatus, by domain.Role) {
	err := s.events.PublishReservationStatus(ctx, domain.ReservationStatusChanged{
		ReservationID: id,
		OldStatus:     from,
		NewStatus:     to,
		ChangedBy:     by,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("event_publish_failed", err, map[string]any{"reservation_id": id, "to": to})
	}
}
