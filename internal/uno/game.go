// internal/uno/game.go
package uno

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redtable/uno/internal/deck"
	"github.com/redtable/uno/internal/models"
	"github.com/redtable/uno/internal/store"
)

// allSeats is the fixed pool of seat ids; a game uses the first 2-4 of them
// in seating order.
var allSeats = []string{"A", "B", "C", "D"}

const handSize = 7

// Backend is the shared-state surface the engine drives: record get/set,
// the per-game mutation lock, the turn notification channel and the action
// history queue. The Redis store satisfies it; tests use an in-memory fake.
// Read is expected to apply the legacy two-player schema defaults.
type Backend interface {
	Exists(ctx context.Context, gameID string) (bool, error)
	Read(ctx context.Context, gameID string) (*models.Record, error)
	Write(ctx context.Context, gameID string, rec *models.Record) error
	AcquireLock(ctx context.Context, gameID string) error
	ReleaseLock(ctx context.Context, gameID string) error
	Publish(ctx context.Context, gameID string) error
	Subscribe(ctx context.Context, gameID string) (store.Subscription, error)
	PushAction(ctx context.Context, rec models.ActionRecord) error
}

// Game binds one player's seat to a game record in the shared store. Any
// number of Game instances, in any number of processes, may point at the
// same record; every mutation is a single read-modify-write critical
// section under the per-game lock.
type Game struct {
	ID    string
	Seat  string
	seats []string

	backend Backend
	log     *logrus.Entry
}

// New validates the seat assignment and returns a Game bound to backend.
// It does not touch the store; call Ensure to create the record.
func New(backend Backend, logger *logrus.Logger, gameID, seat string, numPlayers int) (*Game, error) {
	if numPlayers < 2 || numPlayers > 4 {
		return nil, fmt.Errorf("num players must be 2-4, got %d", numPlayers)
	}
	seats := allSeats[:numPlayers]
	found := false
	for _, s := range seats {
		if s == seat {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("seat %q is not one of %v", seat, seats)
	}
	return &Game{
		ID:      gameID,
		Seat:    seat,
		seats:   seats,
		backend: backend,
		log: logger.WithFields(logrus.Fields{
			"game": gameID,
			"seat": seat,
		}),
	}, nil
}

// Ensure creates the game record if it is missing: shuffle, deal, flip the
// opening card and resolve its face. Safe to call from every participant
// process; only the first caller under the lock deals the game.
func (g *Game) Ensure(ctx context.Context) error {
	if err := g.backend.AcquireLock(ctx, g.ID); err != nil {
		return err
	}
	defer g.releaseLock(ctx)

	exists, err := g.backend.Exists(ctx, g.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	cards := deck.Build()
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	hands := make(map[string][]string, len(g.seats))
	offset := 0
	for _, seat := range g.seats {
		hands[seat] = append([]string(nil), cards[offset:offset+handSize]...)
		offset += handSize
	}
	remaining := cards[offset:]

	// Wild cards are never a valid opening discard; flip the first non-wild.
	start := 0
	for deck.IsWild(remaining[start]) {
		start++
	}
	opener := remaining[start]
	remaining = append(remaining[:start], remaining[start+1:]...)

	openerCard, err := deck.Parse(opener)
	if err != nil {
		return err
	}

	rec := &models.Record{
		DrawPile:     remaining,
		DiscardPile:  []string{opener},
		Hands:        hands,
		CurrentTurn:  g.seats[0],
		CurrentColor: string(openerCard.Color),
		LastAction:   "Game started",
		PlayerOrder:  append([]string(nil), g.seats...),
		Direction:    1,
	}
	applyOpener(rec, opener, openerCard)

	if err := g.backend.Write(ctx, g.ID, rec); err != nil {
		return err
	}
	g.log.WithField("players", len(g.seats)).Info("game created")
	return nil
}

// applyOpener resolves the starting card's face as if the first seat had
// just played it. The dealer absorbs an opening Draw Two penalty themselves;
// that is the table rule here, intentionally unlike the in-game Draw Two.
func applyOpener(rec *models.Record, opener string, card deck.Card) {
	first := rec.PlayerOrder[0]
	switch card.Kind {
	case deck.Skip:
		rec.CurrentTurn = rec.NextSeat(first, 1)
		rec.LastAction = fmt.Sprintf("Game started – %s skips Player %s's turn", opener, first)
	case deck.Reverse:
		if len(rec.PlayerOrder) == 2 {
			rec.CurrentTurn = rec.NextSeat(first, 1)
			rec.LastAction = fmt.Sprintf("Game started – %s skips Player %s's turn", opener, first)
		} else {
			rec.Direction = -1
			rec.CurrentTurn = rec.PlayerOrder[len(rec.PlayerOrder)-1]
			rec.LastAction = fmt.Sprintf("Game started – %s reverses direction, Player %s goes first",
				opener, rec.CurrentTurn)
		}
	case deck.DrawTwo:
		for i := 0; i < 2 && len(rec.DrawPile) > 0; i++ {
			rec.Hands[first] = append(rec.Hands[first], popCard(rec))
		}
		rec.CurrentTurn = rec.NextSeat(first, 1)
		rec.LastAction = fmt.Sprintf("Game started – %s: Player %s draws 2 and is skipped", opener, first)
	}
}

// State returns the raw record for read-only rendering. Like Status, it does
// not take the lock: writers persist complete records, so a single read is
// always internally consistent.
func (g *Game) State(ctx context.Context) (*models.Record, error) {
	return g.backend.Read(ctx, g.ID)
}

func (g *Game) releaseLock(ctx context.Context) {
	if err := g.backend.ReleaseLock(ctx, g.ID); err != nil {
		g.log.WithError(err).Warn("failed to release game lock")
	}
}

// commit persists the record and wakes every waiter. A failed publish is
// logged, not returned: waiters recover via their poll interval.
func (g *Game) commit(ctx context.Context, rec *models.Record) error {
	if err := g.backend.Write(ctx, g.ID, rec); err != nil {
		return err
	}
	if err := g.backend.Publish(ctx, g.ID); err != nil {
		g.log.WithError(err).Warn("failed to publish turn notification")
	}
	return nil
}

// recordAction enqueues a history entry; failures are logged only.
func (g *Game) recordAction(ctx context.Context, action, card, chosenColor, detail string) {
	err := g.backend.PushAction(ctx, models.ActionRecord{
		GameID:      g.ID,
		Seat:        g.Seat,
		Action:      action,
		Card:        card,
		ChosenColor: chosenColor,
		Detail:      detail,
		Timestamp:   time.Now().UnixMilli(),
	})
	if err != nil {
		g.log.WithError(err).Warn("failed to enqueue action record")
	}
}

// reshuffleIfNeeded rebuilds an empty draw pile from the discard pile,
// leaving the top card in place. No-op while the draw pile has cards or
// there is nothing below the top discard.
func reshuffleIfNeeded(rec *models.Record) {
	if len(rec.DrawPile) > 0 || len(rec.DiscardPile) <= 1 {
		return
	}
	top := rec.Top()
	pile := rec.DiscardPile[:len(rec.DiscardPile)-1]
	rand.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
	rec.DrawPile = pile
	rec.DiscardPile = []string{top}
}

// popCard removes and returns the top of the draw pile.
func popCard(rec *models.Record) string {
	card := rec.DrawPile[len(rec.DrawPile)-1]
	rec.DrawPile = rec.DrawPile[:len(rec.DrawPile)-1]
	return card
}

// directionLabel names the play direction for display.
func directionLabel(direction int) string {
	if direction == 1 {
		return "Clockwise"
	}
	return "Counter-clockwise"
}
