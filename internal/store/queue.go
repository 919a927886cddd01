// internal/store/queue.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/redtable/uno/internal/models"
)

// PushAction appends an action record to the historian queue. The caller
// decides what to do with a failure; history must never fail a move.
func (s *Store) PushAction(ctx context.Context, rec models.ActionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode action record: %w", err)
	}
	if err := s.rdb.RPush(ctx, s.queue, data).Err(); err != nil {
		return fmt.Errorf("push to queue %s: %w", s.queue, err)
	}
	return nil
}

// PopAction blocks up to timeout for the next queued action record. A nil
// record with nil error means the timeout elapsed with an empty queue.
func (s *Store) PopAction(ctx context.Context, timeout time.Duration) (*models.ActionRecord, error) {
	vals, err := s.rdb.BLPop(ctx, timeout, s.queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop from queue %s: %w", s.queue, err)
	}
	// vals[0] is the queue name, vals[1] the payload
	var rec models.ActionRecord
	if err := json.Unmarshal([]byte(vals[1]), &rec); err != nil {
		return nil, fmt.Errorf("decode action record: %w", err)
	}
	return &rec, nil
}
