// internal/autoplay/runner.go
package autoplay

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redtable/uno/internal/deck"
	"github.com/redtable/uno/internal/models"
	"github.com/redtable/uno/internal/uno"
)

const waitTimeout = 120 * time.Second

// Runner plays one seat in the background: wait for the turn, re-check
// state, make a strategy move, repeat until the game ends or ctx is
// cancelled.
type Runner struct {
	Game *uno.Game
	Log  *logrus.Entry

	// Delay is a pause before each move so human spectators can follow along.
	Delay time.Duration
}

// Run loops until the game is over or ctx is done.
func (r *Runner) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.Game.Wait(ctx, waitTimeout); err != nil {
			if errors.Is(err, uno.ErrWaitTimeout) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			r.Log.WithError(err).Warn("wait failed, stopping runner")
			return
		}

		rec, err := r.Game.State(ctx)
		if err != nil {
			r.Log.WithError(err).Warn("state read failed, stopping runner")
			return
		}
		if rec.Over() {
			return
		}
		if rec.CurrentTurn != r.Game.Seat {
			continue
		}

		if r.Delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.Delay):
			}
		}
		r.MoveOnce(ctx, rec)
	}
}

// MoveOnce applies one strategy move against the given record snapshot. Turn
// races are expected: another process may move between the snapshot and the
// play, in which case the rejection is silently absorbed.
func (r *Runner) MoveOnce(ctx context.Context, rec *models.Record) {
	mv := FirstLegal(rec.Hands[r.Game.Seat], rec.Top(), deck.Color(rec.CurrentColor))

	var err error
	if mv.Action == "play" {
		_, err = r.Game.Play(ctx, mv.Card, mv.ChosenColor)
	} else {
		_, err = r.Game.Draw(ctx)
	}
	if err != nil && !errors.Is(err, uno.ErrWrongTurn) && !errors.Is(err, uno.ErrGameOver) {
		r.Log.WithError(err).Warn("auto move rejected")
	}
}
