// internal/autoplay/autoplay.go
package autoplay

import (
	"math/rand"

	"github.com/redtable/uno/internal/deck"
)

// Move is one decision by the scripted strategy.
type Move struct {
	Action      string // "play" or "draw"
	Card        string
	ChosenColor string
}

// FirstLegal picks the first playable card in hand order, choosing a random
// color for wilds, and falls back to drawing when nothing is playable.
func FirstLegal(hand []string, top string, active deck.Color) Move {
	for _, card := range hand {
		legal, err := deck.IsLegal(card, top, active)
		if err != nil || !legal {
			continue
		}
		mv := Move{Action: "play", Card: card}
		if deck.IsWild(card) {
			mv.ChosenColor = string(deck.Colors[rand.Intn(len(deck.Colors))])
		}
		return mv
	}
	return Move{Action: "draw"}
}
