package cart

import (
	"context"
	"errors"
	"fmt"

	"dinehall/internal/catalog"
	"dinehall/internal/domain"
)

// Summary is what the cart page renders: the lines plus the derived subtotal.
type Summary struct {
	Lines    []domain.CartLine `json:"lines"`
	Subtotal float64           `json:"subtotal"`
}

type Service struct {
	store   Store
	catalog catalog.Store
}

func NewService(store Store, cat catalog.Store) *Service {
	return &Service{store: store, catalog: cat}
}

// Add resolves the menu item and puts it in the session cart. The price
// recorded here is a display snapshot; checkout re-prices from the catalog.
func (s *Service) Add(ctx context.Context, sessionID string, menuItemID int64, quantity int, instructions string) (Summary, error) {
	if quantity < 1 {
		return Summary{}, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	item, err := s.catalog.GetItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Summary{}, domain.ErrNotFound
		}
		return Summary{}, fmt.Errorf("resolve menu item: %w", err)
	}
	if !item.IsAvailable {
		return Summary{}, &domain.ItemUnavailableError{MenuItemID: item.ID, Name: item.Name}
	}

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	c.Add(domain.CartLine{
		MenuItemID:          item.ID,
		Name:                item.Name,
		Quantity:            quantity,
		SpecialInstructions: instructions,
		UnitPrice:           item.Price,
	})
	if err := s.store.Put(ctx, c); err != nil {
		return Summary{}, err
	}
	return summarize(c), nil
}

// SetQuantity updates one line; a quantity of zero removes it.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, menuItemID int64, quantity int) (Summary, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if !c.SetQuantity(menuItemID, quantity) {
		return Summary{}, domain.ErrNotFound
	}
	if err := s.store.Put(ctx, c); err != nil {
		return Summary{}, err
	}
	return summarize(c), nil
}

func (s *Service) Remove(ctx context.Context, sessionID string, menuItemID int64) (Summary, error) {
	return s.SetQuantity(ctx, sessionID, menuItemID, 0)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(c), nil
}

func summarize(c domain.Cart) Summary {
	return Summary{Lines: c.Lines, Subtotal: c.Subtotal()}
}
