package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinehall/internal/common/logger"
	"dinehall/internal/domain"
	"dinehall/internal/events"
)

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	nextID       int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reservations: make(map[int64]*domain.Reservation), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, r *domain.Reservation) error {
	taken, _ := f.HasActiveSlot(ctx, r.CustomerID, r.Date, r.Time)
	if taken {
		return &domain.ConflictError{Reason: "an active reservation already exists for this date and time"}
	}
	r.ID = f.nextID
	f.nextID++
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeRepo) HasActiveSlot(ctx context.Context, customerID int64, date, timeOfDay string) (bool, error) {
	for _, r := range f.reservations {
		if r.CustomerID == customerID && r.Date == date && r.Time == timeOfDay &&
			r.Status != domain.ReservationCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) TransitionTx(ctx context.Context, id int64,
	decide func(domain.Reservation) (domain.ReservationStatus, error)) (domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	target, err := decide(*r)
	if err != nil {
		return domain.Reservation{}, err
	}
	if target != r.Status {
		r.Status = target
		r.UpdatedAt = time.Now().UTC()
	}
	return *r, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return *r, nil
}

func (f *fakeRepo) ListByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.Date == date {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.CustomerID == customerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, events.Noop{}, logger.New("test")), repo
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateReservation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	r, err := svc.Create(ctx, 42, futureDate(3), "19:00", 4, "window table")
	require.NoError(t, err)
	assert.NotZero(t, r.ID)
	assert.Equal(t, domain.ReservationPending, r.Status)
	assert.Equal(t, 4, r.PartySize)
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := futureDate(3)

	var invalid *domain.ValidationError

	_, err := svc.Create(ctx, 0, date, "19:00", 4, "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "customer_id", invalid.Field)

	_, err = svc.Create(ctx, 42, "next tuesday", "19:00", 4, "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "date", invalid.Field)

	_, err = svc.Create(ctx, 42, "2020-01-01", "19:00", 4, "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "date", invalid.Field)

	_, err = svc.Create(ctx, 42, date, "", 4, "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "time", invalid.Field)

	_, err = svc.Create(ctx, 42, date, "19:00", 0, "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "party_size", invalid.Field)
}

func TestCreateReservationSlotConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := futureDate(5)

	_, err := svc.Create(ctx, 42, date, "19:00", 2, "")
	require.NoError(t, err)

	// same customer, same slot
	_, err = svc.Create(ctx, 42, date, "19:00", 4, "")
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)

	// a different time or a different customer is fine
	_, err = svc.Create(ctx, 42, date, "20:30", 4, "")
	assert.NoError(t, err)
	_, err = svc.Create(ctx, 7, date, "19:00", 4, "")
	assert.NoError(t, err)
}

func TestCancelledReservationFreesSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := futureDate(5)

	r, err := svc.Create(ctx, 42, date, "19:00", 2, "")
	require.NoError(t, err)

	owner := domain.Actor{Role: domain.RoleCustomer, ID: 42}
	_, err = svc.Transition(ctx, r.ID, owner, domain.ReservationCancelled)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 42, date, "19:00", 2, "")
	assert.NoError(t, err, "a cancelled reservation must not block the slot")
}

func TestReservationStaffLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	manager := domain.Actor{Role: domain.RoleManager, ID: 1}

	r, err := svc.Create(ctx, 42, futureDate(2), "18:00", 6, "")
	require.NoError(t, err)

	for _, target := range []domain.ReservationStatus{
		domain.ReservationConfirmed, domain.ReservationSeated, domain.ReservationCompleted,
	} {
		r, err = svc.Transition(ctx, r.ID, manager, target)
		require.NoError(t, err)
		assert.Equal(t, target, r.Status)
	}

	// completed stays completed
	_, err = svc.Transition(ctx, r.ID, manager, domain.ReservationCancelled)
	var forbidden *domain.ForbiddenTransitionError
	assert.ErrorAs(t, err, &forbidden)
}

func TestReservationCustomerRules(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	owner := domain.Actor{Role: domain.RoleCustomer, ID: 42}
	stranger := domain.Actor{Role: domain.RoleCustomer, ID: 99}

	r, err := svc.Create(ctx, 42, futureDate(2), "18:00", 2, "")
	require.NoError(t, err)

	// customers cannot confirm or seat, only cancel
	_, err = svc.Transition(ctx, r.ID, owner, domain.ReservationConfirmed)
	var forbidden *domain.ForbiddenTransitionError
	require.ErrorAs(t, err, &forbidden)

	// someone else's reservation reads as missing
	_, err = svc.Transition(ctx, r.ID, stranger, domain.ReservationCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.Transition(ctx, r.ID, owner, domain.ReservationCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, got.Status)
}

func TestReservationTransitionIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	manager := domain.Actor{Role: domain.RoleManager, ID: 1}

	r, err := svc.Create(ctx, 42, futureDate(2), "18:00", 2, "")
	require.NoError(t, err)

	first, err := svc.Transition(ctx, r.ID, manager, domain.ReservationConfirmed)
	require.NoError(t, err)

	second, err := svc.Transition(ctx, r.ID, manager, domain.ReservationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.UpdatedAt, repo.reservations[r.ID].UpdatedAt)
}

func TestReservationListFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := futureDate(4)

	_, err := svc.Create(ctx, 42, date, "18:00", 2, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 42, futureDate(6), "18:00", 2, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 7, date, "19:00", 3, "")
	require.NoError(t, err)

	byDate, err := svc.ListByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	_, err = svc.ListByDate(ctx, "soon")
	var invalid *domain.ValidationError
	assert.ErrorAs(t, err, &invalid)

	byCustomer, err := svc.ListByCustomer(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	pending, err := svc.ListByStatus(ctx, domain.ReservationPending)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}
