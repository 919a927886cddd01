// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/redtable/uno/internal/config"
	"github.com/redtable/uno/internal/models"
)

// ErrNotFound is returned when no record exists for a game id.
var ErrNotFound = errors.New("game state not found")

// Store wraps the Redis client with the game's key scheme: one state key,
// one lock key and one turn notification channel per game id, plus a shared
// action history queue. It provides no atomicity beyond single-key get/set;
// the turn engine serializes read-modify-write cycles with the lock.
type Store struct {
	rdb       *redis.Client
	lockTTL   time.Duration
	lockRetry time.Duration
	queue     string
}

// Connect dials Redis using cfg and verifies the connection with a ping.
func Connect(cfg config.Config) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}
	return &Store{
		rdb:       rdb,
		lockTTL:   cfg.LockTTL,
		lockRetry: cfg.LockRetry,
		queue:     cfg.HistorianQueue,
	}, nil
}

// Close releases the underlying Redis connection pool.
func (s *Store) Close() error {
	return s.rdb.Close()
}

func stateKey(gameID string) string {
	return "uno:" + gameID
}

func lockKey(gameID string) string {
	return "uno:" + gameID + ":lock"
}

func turnChannel(gameID string) string {
	return "uno:" + gameID + ":turns"
}

// Exists reports whether a record is present for gameID.
func (s *Store) Exists(ctx context.Context, gameID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, stateKey(gameID)).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", gameID, err)
	}
	return n > 0, nil
}

// Read loads and decodes the record for gameID, applying the legacy schema
// defaults for records written before seating order and direction existed.
func (s *Store) Read(ctx context.Context, gameID string) (*models.Record, error) {
	raw, err := s.rdb.Get(ctx, stateKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", gameID, err)
	}
	var rec models.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", gameID, err)
	}
	rec.Normalize()
	return &rec, nil
}

// Write replaces the record for gameID in full.
func (s *Store) Write(ctx context.Context, gameID string, rec *models.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", gameID, err)
	}
	if err := s.rdb.Set(ctx, stateKey(gameID), data, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", gameID, err)
	}
	return nil
}

// Delete removes the state and lock keys for gameID. Used by the lobby when
// tearing down a finished game; the core never deletes records itself.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	if err := s.rdb.Del(ctx, stateKey(gameID), lockKey(gameID)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", gameID, err)
	}
	return nil
}

// AcquireLock spins on SET NX with expiry until this caller wins the lock or
// ctx is done. The expiry is a safety valve against a crashed holder, so it
// must stay comfortably longer than the slowest critical section.
func (s *Store) AcquireLock(ctx context.Context, gameID string) error {
	for {
		ok, err := s.rdb.SetNX(ctx, lockKey(gameID), "1", s.lockTTL).Result()
		if err != nil {
			return fmt.Errorf("acquire lock %s: %w", gameID, err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.lockRetry):
		}
	}
}

// ReleaseLock unconditionally drops the lock key.
func (s *Store) ReleaseLock(ctx context.Context, gameID string) error {
	if err := s.rdb.Del(ctx, lockKey(gameID)).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", gameID, err)
	}
	return nil
}
