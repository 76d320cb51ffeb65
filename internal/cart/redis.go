package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"dinehall/internal/domain"
)

// cartTTL matches the lifetime of the customer session the cart belongs to.
const cartTTL = 24 * time.Hour

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(sessionID string) string { return "cart:" + sessionID }

func (s *RedisStore) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	val, err := s.client.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return domain.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("get cart %s: %w", sessionID, err)
	}
	var c domain.Cart
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return c, nil
}

func (s *RedisStore) Put(ctx context.Context, cart domain.Cart) error {
	b, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(cart.SessionID), b, cartTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, key(sessionID)).Err()
}
