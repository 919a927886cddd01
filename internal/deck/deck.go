// internal/deck/deck.go
package deck

import "fmt"

// Size is the fixed number of cards in a full deck. The total is invariant
// for a game's lifetime: draw pile + discard pile + all hands always sum to it.
const Size = 108

// Build returns the full deck, unshuffled: per color one 0, two each of 1-9
// and two each of Skip/Reverse/Draw Two, plus four Wild and four Wild Draw Four.
func Build() []string {
	cards := make([]string, 0, Size)
	for _, color := range Colors {
		cards = append(cards, fmt.Sprintf("%s 0", color))
		for n := 1; n <= 9; n++ {
			card := fmt.Sprintf("%s %d", color, n)
			cards = append(cards, card, card)
		}
		for _, action := range []string{"Skip", "Reverse", "Draw Two"} {
			card := fmt.Sprintf("%s %s", color, action)
			cards = append(cards, card, card)
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, "Wild", "Wild Draw Four")
	}
	return cards
}
