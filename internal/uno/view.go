// internal/uno/view.go
package uno

import (
	"fmt"

	"github.com/redtable/uno/internal/models"
)

// StatusLine returns the terminal/turn tag for seat's view of rec: who won,
// or whose move is expected. Two-seat games say "opponent" instead of
// naming the seat.
func StatusLine(rec *models.Record, seat string) string {
	twoSeats := len(rec.PlayerOrder) == 2
	switch {
	case rec.Winner == seat:
		return "YOU WON!"
	case rec.Winner != "":
		if twoSeats {
			return "OPPONENT WON!"
		}
		return fmt.Sprintf("Player %s WON!", rec.Winner)
	case rec.CurrentTurn == seat:
		return "YOUR TURN"
	default:
		if twoSeats {
			return "OPPONENT'S TURN"
		}
		return fmt.Sprintf("Player %s's TURN", rec.CurrentTurn)
	}
}
