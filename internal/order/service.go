package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinehall/internal/cart"
	"dinehall/internal/catalog"
	"dinehall/internal/common/config"
	"dinehall/internal/common/logger"
	"dinehall/internal/domain"
	"dinehall/internal/events"
)

// ItemUpdate adjusts one existing order line; quantity 0 removes it.
type ItemUpdate struct {
	ItemID              int64  `json:"item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

// ItemAddition appends a new line referencing an available menu item.
type ItemAddition struct {
	MenuItemID          int64  `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type Service struct {
	repo    Repository
	catalog catalog.Store
	carts   cart.Store
	events  events.Publisher
	log     *logger.Logger
	pricing config.Order
}

func NewService(repo Repository, cat catalog.Store, carts cart.Store,
	pub events.Publisher, log *logger.Logger, pricing config.Order) *Service {
	return &Service{repo: repo, catalog: cat, carts: carts, events: pub, log: log, pricing: pricing}
}

// Checkout converts a session cart into a persisted order with its lines,
// all or nothing. Every line is re-resolved through the catalog so the
// order carries current prices, not the ones cached in the cart. On any
// persistence failure the cart is left untouched so the customer can retry.
func (s *Service) Checkout(ctx context.Context, c domain.Cart, customerID *int64,
	deliveryType domain.DeliveryType, paymentMethod, address, notes string) (int64, error) {

	if c.Empty() {
		return 0, domain.ErrEmptyCart
	}
	switch deliveryType {
	case domain.DeliveryPickup, domain.DeliveryDelivery:
	default:
		return 0, &domain.ValidationError{Field: "delivery_type", Reason: "must be pickup or delivery"}
	}
	if deliveryType == domain.DeliveryDelivery && address == "" {
		return 0, &domain.ValidationError{Field: "address", Reason: "required for delivery orders"}
	}

	items := make([]domain.OrderItem, 0, len(c.Lines))
	var subtotal float64
	for _, line := range c.Lines {
		item, err := s.catalog.GetItem(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return 0, &domain.ItemUnavailableError{MenuItemID: line.MenuItemID, Name: line.Name}
			}
			return 0, fmt.Errorf("resolve menu item %d: %w", line.MenuItemID, err)
		}
		if !item.IsAvailable {
			return 0, &domain.ItemUnavailableError{MenuItemID: item.ID, Name: item.Name}
		}
		items = append(items, domain.OrderItem{
			MenuItemID:          item.ID,
			Name:                item.Name,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
			UnitPrice:           item.Price,
		})
		subtotal += item.Price * float64(line.Quantity)
	}

	subtotal = domain.RoundCents(subtotal)
	tax := domain.RoundCents(subtotal * s.pricing.TaxRatePercent / 100)
	var fee float64
	if deliveryType == domain.DeliveryDelivery {
		fee = s.pricing.DeliveryFee
	}

	o := domain.Order{
		CustomerID:    customerID,
		Status:        domain.OrderPending,
		PaymentStatus: domain.PaymentPending,
		TotalAmount:   domain.RoundCents(subtotal + tax + fee),
		TaxAmount:     tax,
		DeliveryFee:   fee,
		DeliveryType:  deliveryType,
		PaymentMethod: paymentMethod,
		Address:       address,
		Notes:         notes,
		Items:         items,
	}
	if err := s.repo.CreateTx(ctx, &o); err != nil {
		return 0, &domain.CheckoutFailedError{Cause: err}
	}

	// the cart is consumed by a successful checkout; a failed clear is not
	// a checkout failure, the order already exists
	if err := s.carts.Delete(ctx, c.SessionID); err != nil {
		s.log.Error("cart_clear_failed", err, map[string]any{"session_id": c.SessionID, "order_id": o.ID})
	}

	s.publishOrder(ctx, o.ID, "", domain.OrderPending, domain.RoleCustomer)
	s.log.Info("order_placed", map[string]any{"order_id": o.ID, "total": o.TotalAmount, "items": len(o.Items)})
	return o.ID, nil
}

// Transition moves an order through its lifecycle on behalf of an actor.
// Repeating the current status is a no-op success so a duplicate request
// (a refreshed admin page, a retried kitchen click) cannot corrupt the
// completion timestamp.
func (s *Service) Transition(ctx context.Context, orderID int64, actor domain.Actor, target domain.OrderStatus) (domain.Order, error) {
	if !target.Valid() {
		return domain.Order{}, &domain.ValidationError{Field: "status", Reason: "unknown order status"}
	}

	var from domain.OrderStatus
	updated, err := s.repo.TransitionTx(ctx, orderID, string(actor.Role), func(cur domain.Order) (domain.OrderStatus, error) {
		from = cur.Status
		if actor.Role == domain.RoleCustomer {
			if cur.CustomerID == nil || *cur.CustomerID != actor.ID {
				return "", domain.ErrNotFound
			}
		}
		if target == cur.Status {
			return target, nil
		}
		if !domain.OrderTransitionAllowed(actor, cur.Status, target) {
			return "", &domain.ForbiddenTransitionError{Role: actor.Role, From: string(cur.Status), To: string(target)}
		}
		return target, nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if from != updated.Status {
		s.publishOrder(ctx, orderID, from, updated.Status, actor.Role)
		s.log.Info("order_status_changed", map[string]any{
			"order_id": orderID, "from": from, "to": updated.Status, "by": actor.Role,
		})
	}
	return updated, nil
}

// SetPaymentStatus is an operational correction, staff only.
func (s *Service) SetPaymentStatus(ctx context.Context, orderID int64, actor domain.Actor, status domain.PaymentStatus) error {
	if !actor.Role.Staff() {
		return &domain.ForbiddenTransitionError{Role: actor.Role, From: "payment", To: string(status)}
	}
	if !status.Valid() {
		return &domain.ValidationError{Field: "payment_status", Reason: "unknown payment status"}
	}
	return s.repo.SetPaymentStatus(ctx, orderID, status)
}

// UpdateItems applies staff adjustments to a not-yet-delivered order:
// quantity changes, removals (quantity 0) and appended lines. Totals are
// recomputed in the same transaction so the stored total never drifts from
// the lines.
func (s *Service) UpdateItems(ctx context.Context, orderID int64, actor domain.Actor,
	updates []ItemUpdate, additions []ItemAddition) (domain.Order, error) {

	if !actor.Role.Staff() {
		return domain.Order{}, &domain.ForbiddenTransitionError{Role: actor.Role, From: "items", To: "items"}
	}

	return s.repo.MutateItemsTx(ctx, orderID, func(o *domain.Order) error {
		if o.Status.Terminal() {
			return &domain.ForbiddenTransitionError{Role: actor.Role, From: string(o.Status), To: string(o.Status)}
		}

		for _, u := range updates {
			idx := -1
			for i := range o.Items {
				if o.Items[i].ID == u.ItemID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return domain.ErrNotFound
			}
			if u.Quantity <= 0 {
				o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
				continue
			}
			o.Items[idx].Quantity = u.Quantity
			o.Items[idx].SpecialInstructions = u.SpecialInstructions
		}

		for _, a := range additions {
			if a.Quantity < 1 {
				return &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
			}
			item, err := s.catalog.GetItem(ctx, a.MenuItemID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return &domain.ItemUnavailableError{MenuItemID: a.MenuItemID}
				}
				return err
			}
			if !item.IsAvailable {
				return &domain.ItemUnavailableError{MenuItemID: item.ID, Name: item.Name}
			}
			o.Items = append(o.Items, domain.OrderItem{
				MenuItemID:          item.ID,
				Name:                item.Name,
				Quantity:            a.Quantity,
				SpecialInstructions: a.SpecialInstructions,
				UnitPrice:           item.Price,
			})
		}

		recomputeTotals(o, s.pricing.TaxRatePercent)
		return nil
	})
}

// RecalculateTotal re-derives tax and total from the stored lines. Kept as
// an explicit operation for correcting rows written before totals were
// recomputed on every mutation.
func (s *Service) RecalculateTotal(ctx context.Context, orderID int64, actor domain.Actor) (domain.Order, error) {
	if !actor.Role.Staff() {
		return domain.Order{}, &domain.ForbiddenTransitionError{Role: actor.Role, From: "totals", To: "totals"}
	}
	return s.repo.MutateItemsTx(ctx, orderID, func(o *domain.Order) error {
		recomputeTotals(o, s.pricing.TaxRatePercent)
		return nil
	})
}

func recomputeTotals(o *domain.Order, taxRatePercent float64) {
	subtotal := o.Subtotal()
	o.TaxAmount = domain.RoundCents(subtotal * taxRatePercent / 100)
	o.TotalAmount = domain.RoundCents(subtotal + o.TaxAmount + o.DeliveryFee)
}

func (s *Service) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	return s.repo.Get(ctx, orderID)
}

// GetForCustomer hides other customers' orders behind not-found.
func (s *Service) GetForCustomer(ctx context.Context, orderID int64, actor domain.Actor) (domain.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if actor.Role == domain.RoleCustomer && (o.CustomerID == nil || *o.CustomerID != actor.ID) {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (s *Service) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown order status"}
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) KitchenQueue(ctx context.Context) ([]domain.Order, error) {
	return s.repo.KitchenQueue(ctx)
}

func (s *Service) publishOrder(ctx context.Context, orderID int64, from, to domain.OrderStatus, by domain.Role) {
	err := s.events.PublishOrderStatus(ctx, domain.OrderStatusChanged{
		OrderID:   orderID,
		OldStatus: from,
		NewStatus: to,
		ChangedBy: by,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("event_publish_failed", err, map[string]any{"order_id": orderID, "to": to})
	}
}
