// internal/history/history.go
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redtable/uno/internal/models"
)

// Writer persists action records into the uno_actions table.
type Writer struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx pool against databaseURL and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Writer, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Writer{pool: pool}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS uno_actions (
	id BIGSERIAL PRIMARY KEY,
	game_id TEXT NOT NULL,
	seat TEXT NOT NULL,
	action TEXT NOT NULL,
	card TEXT,
	chosen_color TEXT,
	detail TEXT,
	played_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS uno_actions_game_idx ON uno_actions (game_id);`

// EnsureSchema creates the actions table when missing.
func (w *Writer) EnsureSchema(ctx context.Context) error {
	if _, err := w.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InsertBatch writes the records in a single round trip.
func (w *Writer) InsertBatch(ctx context.Context, recs []models.ActionRecord) error {
	if len(recs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue(
			`INSERT INTO uno_actions (game_id, seat, action, card, chosen_color, detail, played_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rec.GameID, rec.Seat, rec.Action, rec.Card, rec.ChosenColor, rec.Detail,
			time.UnixMilli(rec.Timestamp),
		)
	}

	br := w.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range recs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert action batch: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (w *Writer) Close() {
	w.pool.Close()
}
