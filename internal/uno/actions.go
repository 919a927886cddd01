// internal/uno/actions.go
package uno

import (
	"context"
	"fmt"

	"github.com/redtable/uno/internal/deck"
	"github.com/redtable/uno/internal/models"
)

// Play validates and resolves one card play for this seat. All checks run
// before any mutation; on success the updated record is persisted and every
// waiter is notified. The win check runs strictly after effect resolution,
// so an action card that empties the hand still ends the game immediately.
func (g *Game) Play(ctx context.Context, card, chosenColor string) (string, error) {
	if err := g.backend.AcquireLock(ctx, g.ID); err != nil {
		return "", err
	}
	defer g.releaseLock(ctx)

	rec, err := g.backend.Read(ctx, g.ID)
	if err != nil {
		return "", err
	}

	if rec.Over() {
		return "", ErrGameOver
	}
	if rec.CurrentTurn != g.Seat {
		return "", ErrWrongTurn
	}

	hand := rec.Hands[g.Seat]
	idx := -1
	for i, c := range hand {
		if c == card {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrNotInHand, card)
	}

	legal, err := deck.IsLegal(card, rec.Top(), deck.Color(rec.CurrentColor))
	if err != nil {
		return "", err
	}
	if !legal {
		return "", fmt.Errorf("%w: cannot play %q on %q (current color: %s)",
			ErrIllegalPlay, card, rec.Top(), rec.CurrentColor)
	}

	wild := deck.IsWild(card)
	if wild {
		if chosenColor == "" {
			return "", ErrMissingColor
		}
		if !deck.ValidColor(chosenColor) {
			return "", fmt.Errorf("%w: %q must be one of Red, Yellow, Green, Blue",
				ErrInvalidColor, chosenColor)
		}
	}

	rec.Hands[g.Seat] = append(hand[:idx], hand[idx+1:]...)
	rec.DiscardPile = append(rec.DiscardPile, card)

	played, err := deck.Parse(card)
	if err != nil {
		return "", err
	}

	if wild {
		rec.CurrentColor = chosenColor
	} else {
		rec.CurrentColor = string(played.Color)
	}

	msg := fmt.Sprintf("You played %s.", card)
	switch played.Kind {
	case deck.Skip:
		skipped := rec.NextSeat(g.Seat, 1)
		rec.CurrentTurn = rec.NextSeat(skipped, 1)
		msg += fmt.Sprintf(" %s is skipped.", skipped)
	case deck.Reverse:
		if len(rec.PlayerOrder) == 2 {
			// Two seats: Reverse acts as Skip, the turn stays here.
			rec.CurrentTurn = g.Seat
			msg += fmt.Sprintf(" %s is skipped.", rec.NextSeat(g.Seat, 1))
		} else {
			rec.Direction = -rec.Direction
			rec.CurrentTurn = rec.NextSeat(g.Seat, 1)
			msg += fmt.Sprintf(" Direction is now %s.", directionLabel(rec.Direction))
		}
	case deck.DrawTwo:
		victim := g.penalize(rec, 2)
		msg += fmt.Sprintf(" %s draws 2 and is skipped.", victim)
	case deck.WildDrawFour:
		victim := g.penalize(rec, 4)
		msg += fmt.Sprintf(" Color is now %s. %s draws 4 and is skipped.", chosenColor, victim)
	case deck.Wild:
		rec.CurrentTurn = rec.NextSeat(g.Seat, 1)
		msg += fmt.Sprintf(" Color is now %s.", chosenColor)
	default:
		rec.CurrentTurn = rec.NextSeat(g.Seat, 1)
	}

	if len(rec.Hands[g.Seat]) == 0 {
		rec.Winner = g.Seat
		rec.LastAction = fmt.Sprintf("Player %s played %s and won!", g.Seat, card)
		if err := g.commit(ctx, rec); err != nil {
			return "", err
		}
		g.recordAction(ctx, "play", card, chosenColor, rec.LastAction)
		g.log.Info("game won")
		return fmt.Sprintf("You played %s. You win!", card), nil
	}

	rec.LastAction = fmt.Sprintf("Player %s played %s", g.Seat, card)
	if wild {
		rec.LastAction += fmt.Sprintf(" (chose %s)", chosenColor)
	}
	if err := g.commit(ctx, rec); err != nil {
		return "", err
	}
	g.recordAction(ctx, "play", card, chosenColor, rec.LastAction)
	return msg, nil
}

// penalize reshuffles if needed, deals count cards to the next seat in the
// current direction and skips them. The victim may receive fewer cards when
// the pile cannot be replenished. Returns the penalized seat.
func (g *Game) penalize(rec *models.Record, count int) string {
	reshuffleIfNeeded(rec)
	victim := rec.NextSeat(g.Seat, 1)
	for i := 0; i < count && len(rec.DrawPile) > 0; i++ {
		rec.Hands[victim] = append(rec.Hands[victim], popCard(rec))
	}
	rec.CurrentTurn = rec.NextSeat(victim, 1)
	return victim
}

// Draw pops one card from the draw pile into this seat's hand and ends the
// turn. Fails with ErrDeckExhausted when the pile cannot be replenished.
func (g *Game) Draw(ctx context.Context) (string, error) {
	if err := g.backend.AcquireLock(ctx, g.ID); err != nil {
		return "", err
	}
	defer g.releaseLock(ctx)

	rec, err := g.backend.Read(ctx, g.ID)
	if err != nil {
		return "", err
	}

	if rec.Over() {
		return "", ErrGameOver
	}
	if rec.CurrentTurn != g.Seat {
		return "", ErrWrongTurn
	}

	reshuffleIfNeeded(rec)
	if len(rec.DrawPile) == 0 {
		return "", ErrDeckExhausted
	}

	card := popCard(rec)
	rec.Hands[g.Seat] = append(rec.Hands[g.Seat], card)
	rec.CurrentTurn = rec.NextSeat(g.Seat, 1)
	rec.LastAction = fmt.Sprintf("Player %s drew a card", g.Seat)

	if err := g.commit(ctx, rec); err != nil {
		return "", err
	}
	g.recordAction(ctx, "draw", "", "", rec.LastAction)
	return fmt.Sprintf("You drew: %s", card), nil
}
