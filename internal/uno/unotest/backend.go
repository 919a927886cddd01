// Package unotest provides an in-memory Backend for engine tests: the same
// get/set, lock, notify and queue surface the Redis store exposes, minus the
// network. Records are held serialized so reads exercise the decode and
// legacy default-fill paths exactly like the real store.
package unotest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redtable/uno/internal/models"
	"github.com/redtable/uno/internal/store"
)

// Backend is a thread-safe in-memory stand-in for the Redis store.
type Backend struct {
	mu      sync.Mutex
	records map[string][]byte
	locks   map[string]bool
	subs    map[string][]chan struct{}

	Actions   []models.ActionRecord
	Publishes int
}

// NewBackend returns an empty backend.
func NewBackend() *Backend {
	return &Backend{
		records: make(map[string][]byte),
		locks:   make(map[string]bool),
		subs:    make(map[string][]chan struct{}),
	}
}

// Seed stores rec for gameID, bypassing the lock.
func (b *Backend) Seed(gameID string, rec *models.Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		panic(err)
	}
	b.SeedRaw(gameID, data)
}

// SeedRaw stores raw JSON for gameID, e.g. a legacy-schema record.
func (b *Backend) SeedRaw(gameID string, raw []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[gameID] = raw
}

// Raw returns the stored bytes for gameID, or nil.
func (b *Backend) Raw(gameID string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.records[gameID]
}

// SubscriberCount reports how many subscriptions are open for gameID.
func (b *Backend) SubscriberCount(gameID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[gameID])
}

func (b *Backend) Exists(_ context.Context, gameID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.records[gameID]
	return ok, nil
}

func (b *Backend) Read(_ context.Context, gameID string) (*models.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	raw, ok := b.records[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, gameID)
	}
	var rec models.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	rec.Normalize()
	return &rec, nil
}

func (b *Backend) Write(_ context.Context, gameID string, rec *models.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[gameID] = data
	return nil
}

func (b *Backend) AcquireLock(ctx context.Context, gameID string) error {
	for {
		b.mu.Lock()
		if !b.locks[gameID] {
			b.locks[gameID] = true
			b.mu.Unlock()
			return nil
		}
		b.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (b *Backend) ReleaseLock(_ context.Context, gameID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.locks, gameID)
	return nil
}

func (b *Backend) Publish(_ context.Context, gameID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Publishes++
	for _, ch := range b.subs[gameID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (b *Backend) Subscribe(_ context.Context, gameID string) (store.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan struct{}, 1)
	b.subs[gameID] = append(b.subs[gameID], ch)
	return &subscription{backend: b, gameID: gameID, ch: ch}, nil
}

func (b *Backend) PushAction(_ context.Context, rec models.ActionRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Actions = append(b.Actions, rec)
	return nil
}

type subscription struct {
	backend *Backend
	gameID  string
	ch      chan struct{}
	once    sync.Once
}

func (s *subscription) Updates() <-chan struct{} {
	return s.ch
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		s.backend.mu.Lock()
		defer s.backend.mu.Unlock()
		subs := s.backend.subs[s.gameID]
		for i, ch := range subs {
			if ch == s.ch {
				s.backend.subs[s.gameID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	})
	return nil
}
