package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dinehall/internal/common/db"
	"dinehall/internal/domain"
)

type PGStore struct {
	db *db.Conn
}

func NewPGStore(conn *db.Conn) *PGStore { return &PGStore{db: conn} }

func (s *PGStore) GetItem(ctx context.Context, id int64) (domain.MenuItem, error) {
	var m domain.MenuItem
	err := s.db.QueryRow(ctx, `
		SELECT id, name, description, price, category, is_available, created_at
		FROM menu_items WHERE id=$1`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.IsAvailable, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MenuItem{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return m, nil
}

func (s *PGStore) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, price, category, is_available, created_at
		FROM menu_items WHERE is_available ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.IsAvailable, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (s *PGStore) Create(ctx context.Context, item domain.MenuItem) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, category, is_available)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		item.Name, item.Description, item.Price, item.Category, item.IsAvailable).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create menu item: %w", err)
	}
	return id, nil
}

func (s *PGStore) Update(ctx context.Context, item domain.MenuItem) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE menu_items SET name=$2, description=$3, price=$4, category=$5, is_available=$6
		WHERE id=$1`,
		item.ID, item.Name, item.Description, item.Price, item.Category, item.IsAvailable)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PGStore) SetAvailability(ctx context.Context, id int64, available bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE menu_items SET is_available=$2 WHERE id=$1`, id, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
