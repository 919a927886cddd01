// internal/autoplay/autoplay_test.go
package autoplay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redtable/uno/internal/deck"
)

func TestFirstLegalPicksFirstPlayableCard(t *testing.T) {
	hand := []string{"Green 7", "Blue Skip", "Red 2", "Red 9"}

	mv := FirstLegal(hand, "Red 5", deck.Red)
	assert.Equal(t, "play", mv.Action)
	assert.Equal(t, "Red 2", mv.Card, "hand order decides among playable cards")
	assert.Empty(t, mv.ChosenColor)
}

func TestFirstLegalChoosesColorForWild(t *testing.T) {
	mv := FirstLegal([]string{"Green 7", "Wild"}, "Red 5", deck.Red)
	assert.Equal(t, "play", mv.Action)
	assert.Equal(t, "Wild", mv.Card)
	assert.True(t, deck.ValidColor(mv.ChosenColor), "got %q", mv.ChosenColor)
}

func TestFirstLegalFallsBackToDraw(t *testing.T) {
	mv := FirstLegal([]string{"Green 7", "Blue 2"}, "Red 5", deck.Red)
	assert.Equal(t, Move{Action: "draw"}, mv)

	mv = FirstLegal(nil, "Red 5", deck.Red)
	assert.Equal(t, Move{Action: "draw"}, mv)
}

func TestFirstLegalSkipsMalformedTokens(t *testing.T) {
	mv := FirstLegal([]string{"garbage", "Red 2"}, "Red 5", deck.Red)
	assert.Equal(t, "Red 2", mv.Card)
}
