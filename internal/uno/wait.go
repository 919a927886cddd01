// internal/uno/wait.go
package uno

import (
	"context"
	"time"
)

// waitPoll bounds how long a waiter sleeps between state re-checks even when
// no signal arrives, covering the rare lost pub/sub message.
const waitPoll = time.Second

// Wait blocks until the game ends or it is this seat's turn, returning the
// record's last action as the wake payload. The subscription is opened
// before the first state check so a mutation published between check and
// subscribe cannot be missed. It holds no lock, only the subscription, which
// is closed on every exit path.
func (g *Game) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	sub, err := g.backend.Subscribe(ctx, g.ID)
	if err != nil {
		return "", err
	}
	defer sub.Close()

	check := func() (string, bool, error) {
		rec, err := g.backend.Read(ctx, g.ID)
		if err != nil {
			return "", false, err
		}
		if rec.Over() || rec.CurrentTurn == g.Seat {
			return rec.LastAction, true, nil
		}
		return "", false, nil
	}

	msg, done, err := check()
	if err != nil || done {
		return msg, err
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	poll := time.NewTicker(waitPoll)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", ErrWaitTimeout
		case <-sub.Updates():
		case <-poll.C:
		}

		msg, done, err := check()
		if err != nil {
			return "", err
		}
		if done {
			return msg, nil
		}
	}
}
