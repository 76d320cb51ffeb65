package events

import (
	"context"
	"encoding/json"
	"time"

	"dinehall/internal/common/mq"
	"dinehall/internal/domain"
)

// Publisher emits status-change events after the owning DB transaction has
// committed. Failures are the caller's to log; they never undo state.
type Publisher interface {
	PublishOrderStatus(ctx context.Context, e domain.OrderStatusChanged) error
	PublishReservationStatus(ctx context.Context, e domain.ReservationStatusChanged) error
}

type AMQPPublisher struct {
	client *mq.Client
}

func NewAMQPPublisher(client *mq.Client) *AMQPPublisher {
	return &AMQPPublisher{client: client}
}

func (p *AMQPPublisher) PublishOrderStatus(ctx context.Context, e domain.OrderStatusChanged) error {
	return p.publish(ctx, "orders.status."+string(e.NewStatus), e)
}

func (p *AMQPPublisher) PublishReservationStatus(ctx context.Context, e domain.ReservationStatusChanged) error {
	return p.publish(ctx, "reservations.status."+string(e.NewStatus), e)
}

func (p *AMQPPublisher) publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.client.PublishPersistent(ctx, mq.EventsExchange, key, body)
}

// Noop satisfies Publisher for tests and broker-less runs.
type Noop struct{}

func (Noop) PublishOrderStatus(ctx context.Context, e domain.OrderStatusChanged) error { return nil }

func (Noop) PublishReservationStatus(ctx context.Context, e domain.ReservationStatusChanged) error {
	return nil
}
