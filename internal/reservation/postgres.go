package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dinehall/internal/common/db"
	"dinehall/internal/domain"
)

type PGRepository struct {
	db *db.Conn
}

func NewPGRepository(conn *db.Conn) *PGRepository { return &PGRepository{db: conn} }

const reservationColumns = `id, customer_id, to_char(reservation_date, 'YYYY-MM-DD'),
	reservation_time, party_size, special_request, status, created_at, updated_at`

func scanReservation(row pgx.Row, r *domain.Reservation) error {
	return row.Scan(&r.ID, &r.CustomerID, &r.Date, &r.Time, &r.PartySize,
		&r.SpecialRequest, &r.Status, &r.CreatedAt, &r.UpdatedAt)
}

func (p *PGRepository) Create(ctx context.Context, r *domain.Reservation) error {
	err := p.db.QueryRow(ctx, `
		INSERT INTO reservations (customer_id, reservation_date, reservation_time, party_size, special_request, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		r.CustomerID, r.Date, r.Time, r.PartySize, r.SpecialRequest, r.Status).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		// the partial unique index backs up the pre-write conflict check
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return &domain.ConflictError{Reason: "an active reservation already exists for this date and time"}
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// HasActiveSlot reports whether the customer already holds a non-cancelled
// reservation for the slot.
func (p *PGRepository) HasActiveSlot(ctx context.Context, customerID int64, date, timeOfDay string) (bool, error) {
	var exists bool
	err := p.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE customer_id=$1 AND reservation_date=$2 AND reservation_time=$3 AND status <> 'cancelled'
		)`, customerID, date, timeOfDay).Scan(&exists)
	return exists, err
}

func (p *PGRepository) TransitionTx(ctx context.Context, id int64,
	decide func(current domain.Reservation) (domain.ReservationStatus, error)) (domain.Reservation, error) {

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return domain.Reservation{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur domain.Reservation
	err = scanReservation(tx.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id=$1 FOR UPDATE`, id), &cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Reservation{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("lock reservation %d: %w", id, err)
	}

	target, err := decide(cur)
	if err != nil {
		return domain.Reservation{}, err
	}
	if target == cur.Status {
		return cur, tx.Commit(ctx)
	}

	err = scanReservation(tx.QueryRow(ctx, `
		UPDATE reservations SET status=$2, updated_at=NOW() WHERE id=$1
		RETURNING `+reservationColumns, id, target), &cur)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("update reservation %d status: %w", id, err)
	}
	return cur, tx.Commit(ctx)
}

func (p *PGRepository) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	var r domain.Reservation
	err := scanReservation(p.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id), &r)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return r, err
}

func (p *PGRepository) ListByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	return p.list(ctx, `SELECT `+reservationColumns+` FROM reservations
		WHERE reservation_date=$1 ORDER BY reservation_time`, date)
}

func (p *PGRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return p.list(ctx, `SELECT `+reservationColumns+` FROM reservations
		WHERE status=$1 ORDER BY reservation_date, reservation_time`, status)
}

func (p *PGRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error) {
	return p.list(ctx, `SELECT `+reservationColumns+` FROM reservations
		WHERE customer_id=$1 ORDER BY reservation_date DESC, reservation_time`, customerID)
}

func (p *PGRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Reservation, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var r domain.Reservation
		if err := scanReservation(rows, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
