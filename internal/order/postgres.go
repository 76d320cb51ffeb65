package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dinehall/internal/common/db"
	"dinehall/internal/domain"
)

type PGRepository struct {
	db *db.Conn
}

func NewPGRepository(conn *db.Conn) *PGRepository { return &PGRepository{db: conn} }

const orderColumns = `id, customer_id, status, payment_status, total_amount, tax_amount,
	delivery_fee, delivery_type, payment_method, address, notes, created_at, updated_at, completed_at`

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(&o.ID, &o.CustomerID, &o.Status, &o.PaymentStatus, &o.TotalAmount,
		&o.TaxAmount, &o.DeliveryFee, &o.DeliveryType, &o.PaymentMethod, &o.Address,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.CompletedAt)
}

func (r *PGRepository) CreateTx(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, status, payment_status, total_amount, tax_amount,
			delivery_fee, delivery_type, payment_method, address, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`,
		o.CustomerID, o.Status, o.PaymentStatus, o.TotalAmount, o.TaxAmount,
		o.DeliveryFee, o.DeliveryType, o.PaymentMethod, o.Address, o.Notes).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, special_instructions, unit_price)
			VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			it.OrderID, it.MenuItemID, it.Name, it.Quantity, it.SpecialInstructions, it.UnitPrice).
			Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", it.MenuItemID, err)
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1,$2,$3,'order placed')`,
		o.ID, o.Status, string(domain.RoleCustomer)); err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PGRepository) TransitionTx(ctx context.Context, orderID int64, changedBy string,
	decide func(current domain.Order) (domain.OrderStatus, error)) (domain.Order, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur domain.Order
	err = scanOrder(tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID), &cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("lock order %d: %w", orderID, err)
	}

	target, err := decide(cur)
	if err != nil {
		return domain.Order{}, err
	}
	if target == cur.Status {
		// idempotent repeat, nothing to write
		return cur, tx.Commit(ctx)
	}

	// completed_at moves with the terminal success state: set on entering
	// delivered, cleared when an override moves the order back out of it.
	err = scanOrder(tx.QueryRow(ctx, `
		UPDATE orders SET
			status=$2,
			updated_at=NOW(),
			completed_at=CASE
				WHEN $2='delivered' THEN NOW()
				WHEN status='delivered' THEN NULL
				ELSE completed_at
			END
		WHERE id=$1
		RETURNING `+orderColumns, orderID, target), &cur)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order %d status: %w", orderID, err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by) VALUES ($1,$2,$3)`,
		orderID, target, changedBy); err != nil {
		return domain.Order{}, fmt.Errorf("insert status log: %w", err)
	}

	return cur, tx.Commit(ctx)
}

func (r *PGRepository) MutateItemsTx(ctx context.Context, orderID int64,
	apply func(o *domain.Order) error) (domain.Order, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var o domain.Order
	err = scanOrder(tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("lock order %d: %w", orderID, err)
	}
	o.Items, err = loadItems(ctx, tx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := apply(&o); err != nil {
		return domain.Order{}, err
	}

	keep := make([]int64, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == 0 {
			it.OrderID = orderID
			err = tx.QueryRow(ctx, `
				INSERT INTO order_items (order_id, menu_item_id, name, quantity, special_instructions, unit_price)
				VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
				orderID, it.MenuItemID, it.Name, it.Quantity, it.SpecialInstructions, it.UnitPrice).
				Scan(&it.ID)
			if err != nil {
				return domain.Order{}, fmt.Errorf("insert order item: %w", err)
			}
		} else {
			if _, err := tx.Exec(ctx, `
				UPDATE order_items SET quantity=$3, special_instructions=$4
				WHERE id=$1 AND order_id=$2`,
				it.ID, orderID, it.Quantity, it.SpecialInstructions); err != nil {
				return domain.Order{}, fmt.Errorf("update order item %d: %w", it.ID, err)
			}
		}
		keep = append(keep, it.ID)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM order_items WHERE order_id=$1 AND NOT (id = ANY($2))`,
		orderID, keep); err != nil {
		return domain.Order{}, fmt.Errorf("delete removed items: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders SET total_amount=$2, tax_amount=$3, updated_at=NOW() WHERE id=$1`,
		orderID, o.TotalAmount, o.TaxAmount); err != nil {
		return domain.Order{}, fmt.Errorf("update order totals: %w", err)
	}

	return o, tx.Commit(ctx)
}

func (r *PGRepository) SetPaymentStatus(ctx context.Context, orderID int64, status domain.PaymentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET payment_status=$2, updated_at=NOW() WHERE id=$1`, orderID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	var o domain.Order
	err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, orderID), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.Items, err = loadItems(ctx, r.db, orderID)
	return o, err
}

func (r *PGRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status=$1 ORDER BY created_at DESC`, status)
}

func (r *PGRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
}

func (r *PGRepository) KitchenQueue(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE status IN ('pending','confirmed','preparing')
		ORDER BY CASE status
			WHEN 'pending' THEN 1
			WHEN 'confirmed' THEN 2
			WHEN 'preparing' THEN 3
		END, created_at`)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PGRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func loadItems(ctx context.Context, q querier, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity, special_instructions, unit_price
		FROM order_items WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name,
			&it.Quantity, &it.SpecialInstructions, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
