// internal/store/notify.go
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// updateSignal is the payload published on every turn change. Subscribers
// treat any message as "state changed, re-read it".
const updateSignal = "update"

// Subscription delivers turn-change signals until closed. Close must be
// called on every exit path to avoid leaking the underlying connection.
type Subscription interface {
	Updates() <-chan struct{}
	Close() error
}

// Publish signals every subscriber on the game's turn channel. Fire and
// forget: a lost signal is absorbed by the subscriber's poll interval.
func (s *Store) Publish(ctx context.Context, gameID string) error {
	if err := s.rdb.Publish(ctx, turnChannel(gameID), updateSignal).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", gameID, err)
	}
	return nil
}

// Subscribe opens a subscription on the game's turn channel. It returns only
// after the subscription is confirmed by Redis, so a caller that subscribes
// before checking state cannot miss a concurrent update.
func (s *Store) Subscribe(ctx context.Context, gameID string) (Subscription, error) {
	pubsub := s.rdb.Subscribe(ctx, turnChannel(gameID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", gameID, err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		ch:     make(chan struct{}, 1),
	}
	go sub.pump()
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	ch     chan struct{}
}

// pump collapses pub/sub messages into single-slot signals. Coalescing is
// fine: the waiter re-reads the full record on every wake anyway.
func (r *redisSubscription) pump() {
	for range r.pubsub.Channel() {
		select {
		case r.ch <- struct{}{}:
		default:
		}
	}
}

func (r *redisSubscription) Updates() <-chan struct{} {
	return r.ch
}

func (r *redisSubscription) Close() error {
	return r.pubsub.Close()
}
