// cmd/historian/main.go is an asynchronous historian service that pops
// action records from the Redis queue and persists them to PostgreSQL in
// batches.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/redtable/uno/internal/config"
	"github.com/redtable/uno/internal/history"
	"github.com/redtable/uno/internal/models"
	"github.com/redtable/uno/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	st, err := store.Connect(cfg)
	if err != nil {
		logger.Fatalf("redis: %v", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	writer, err := history.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("postgres: %v", err)
	}
	defer writer.Close()

	if err := writer.EnsureSchema(ctx); err != nil {
		logger.Fatalf("schema: %v", err)
	}

	logger.Info("uno-historian started")
	run(ctx, logger, st, writer, cfg)
	logger.Info("uno-historian shutting down")
}

// run accumulates popped records and flushes them to Postgres when the batch
// fills or the queue goes quiet for one flush interval.
func run(ctx context.Context, logger *logrus.Logger, st *store.Store, writer *history.Writer, cfg config.Config) {
	batch := make([]models.ActionRecord, 0, cfg.HistorianBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Independent of ctx so the final flush survives shutdown.
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := writer.InsertBatch(flushCtx, batch); err != nil {
			logger.WithError(err).Error("failed to flush action batch")
			return
		}
		logger.WithField("count", len(batch)).Debug("flushed action batch")
		batch = batch[:0]
	}

	for {
		if ctx.Err() != nil {
			flush()
			return
		}

		rec, err := st.PopAction(ctx, cfg.HistorianFlush)
		if err != nil {
			if ctx.Err() != nil {
				flush()
				return
			}
			logger.WithError(err).Error("failed to pop action record")
			continue
		}
		if rec == nil {
			// Queue idle for a full interval; persist what we have.
			flush()
			continue
		}

		batch = append(batch, *rec)
		if len(batch) >= cfg.HistorianBatchSize {
			flush()
		}
	}
}
