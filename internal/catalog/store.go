package catalog

import (
	"context"

	"dinehall/internal/domain"
)

// Store is the menu catalog as the order engine sees it: a lookup of
// current price and availability, plus the admin CRUD the menu screens use.
type Store interface {
	GetItem(ctx context.Context, id int64) (domain.MenuItem, error)
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)

	Create(ctx context.Context, item domain.MenuItem) (int64, error)
	Update(ctx context.Context, item domain.MenuItem) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	Delete(ctx context.Context, id int64) error
}
