// internal/uno/status.go
package uno

import (
	"context"
	"fmt"
	"strings"
)

// Status renders this seat's view of the table: hand, top card, active
// color, pile count, opponent counts and whose turn it is. It reads without
// the lock; writers always persist complete records, so a single read is a
// consistent snapshot.
func (g *Game) Status(ctx context.Context) (string, error) {
	rec, err := g.backend.Read(ctx, g.ID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("=== Your Hand ===\n")
	for i, card := range rec.Hands[g.Seat] {
		fmt.Fprintf(&b, " %d. %s\n", i+1, card)
	}

	b.WriteString("\n=== Table ===\n")
	fmt.Fprintf(&b, "Top card: %s\n", rec.Top())
	fmt.Fprintf(&b, "Current color: %s\n", rec.CurrentColor)
	fmt.Fprintf(&b, "Draw pile: %d cards\n", len(rec.DrawPile))

	twoSeats := len(rec.PlayerOrder) == 2
	for _, seat := range rec.PlayerOrder {
		if seat == g.Seat {
			continue
		}
		if twoSeats {
			fmt.Fprintf(&b, "Opponent has: %d cards\n", len(rec.Hands[seat]))
		} else {
			fmt.Fprintf(&b, "Player %s has: %d cards\n", seat, len(rec.Hands[seat]))
		}
	}
	if !twoSeats {
		fmt.Fprintf(&b, "Direction: %s\n", directionLabel(rec.Direction))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Status: %s", StatusLine(rec, g.Seat))
	return b.String(), nil
}
