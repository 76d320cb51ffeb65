package cart

import (
	"context"

	"dinehall/internal/domain"
)

// Store persists session carts. A missing cart is not an error: Get
// returns an empty cart for the session so handlers never special-case
// first use.
type Store interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Put(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
